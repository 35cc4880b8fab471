package model

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func strPtr(s string) *string { return &s }

func TestArticlePatchApply(t *testing.T) {
	created := time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)
	base := Article{
		ID:          1,
		Title:       "old title",
		Description: "old description",
		Image:       "a.png",
		Author:      "admin",
		CreatedAt:   created,
	}

	tests := []struct {
		name  string
		patch *ArticlePatch
		want  Article
	}{
		{"nil patch", nil, base},
		{"empty patch", &ArticlePatch{}, base},
		{
			"title only",
			&ArticlePatch{Title: strPtr("new")},
			Article{ID: 1, Title: "new", Description: "old description", Image: "a.png", Author: "admin", CreatedAt: created},
		},
		{
			"clear image",
			&ArticlePatch{Image: strPtr("")},
			Article{ID: 1, Title: "old title", Description: "old description", Author: "admin", CreatedAt: created},
		},
		{
			"all fields",
			&ArticlePatch{Title: strPtr("t"), Description: strPtr("d"), Image: strPtr("b.jpg")},
			Article{ID: 1, Title: "t", Description: "d", Image: "b.jpg", Author: "admin", CreatedAt: created},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.patch.Apply(base)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestArticlePatchEmpty(t *testing.T) {
	var nilPatch *ArticlePatch
	if !nilPatch.Empty() {
		t.Error("nil patch should be empty")
	}
	if !(&ArticlePatch{}).Empty() {
		t.Error("zero patch should be empty")
	}
	if (&ArticlePatch{Description: strPtr("")}).Empty() {
		t.Error("patch with a supplied field should not be empty")
	}
}
