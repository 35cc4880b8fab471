package articlerequest

import (
	"encoding/json"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/SergeyParamoshkin/news/internal/model"
)

// ArticleRequest is the request payload for creating and editing news.
//
// Only title, description and image can be set by the caller. The id,
// author and timestamps are owned by the server, so the Protected* fields
// swallow them during decoding and Bind drops them.
type ArticleRequest struct {
	*model.ArticlePatch

	ProtectedID        json.RawMessage `json:"id,omitempty"`
	ProtectedAuthor    json.RawMessage `json:"author,omitempty"`
	ProtectedCreatedAt json.RawMessage `json:"createdAt,omitempty"`
	ProtectedUpdatedAt json.RawMessage `json:"updatedAt,omitempty"`
}

func (a *ArticleRequest) Bind(r *http.Request) error {
	// a.ArticlePatch is nil if no news fields are sent in the request.
	if a.ArticlePatch == nil {
		a.ArticlePatch = &model.ArticlePatch{}
	}

	a.ProtectedID = nil
	a.ProtectedAuthor = nil
	a.ProtectedCreatedAt = nil
	a.ProtectedUpdatedAt = nil

	return nil
}

// ImageSaver stores an uploaded image and returns its asset filename.
type ImageSaver interface {
	Save(fh *multipart.FileHeader) (string, error)
}

// IsMultipart reports whether the request body is multipart/form-data.
func IsMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))

	return err == nil && mediaType == "multipart/form-data"
}

// FromMultipart reads the news fields of a multipart/form-data request. An
// "image" file part is stored through images and overrides an "image"
// text field.
func FromMultipart(w http.ResponseWriter, r *http.Request, images ImageSaver, maxBytes int64) (*ArticleRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return nil, fmt.Errorf("parsing multipart form: %w", err)
	}

	patch := &model.ArticlePatch{}
	for _, f := range []struct {
		name string
		dst  **string
	}{
		{"title", &patch.Title},
		{"description", &patch.Description},
		{"image", &patch.Image},
	} {
		if values, ok := r.MultipartForm.Value[f.name]; ok && len(values) > 0 {
			v := values[0]
			*f.dst = &v
		}
	}

	if files := r.MultipartForm.File["image"]; len(files) > 0 {
		name, err := images.Save(files[0])
		if err != nil {
			return nil, err
		}
		patch.Image = &name
	}

	return &ArticleRequest{ArticlePatch: patch}, nil
}
