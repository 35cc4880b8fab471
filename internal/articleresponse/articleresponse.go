package articleresponse

import (
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/news/internal/model"
)

// UploadsPath is where uploaded images are served from.
const UploadsPath = "/static/uploads/"

// ArticleResponse is the response payload for the Article data model.
//
// It carries every stored field unchanged plus a computed imageUrl.
type ArticleResponse struct {
	*model.Article

	ImageURL string `json:"imageUrl,omitempty"`

	baseURL string
}

func NewArticleResponse(article model.Article, baseURL string) *ArticleResponse {
	return &ArticleResponse{Article: &article, baseURL: baseURL}
}

func NewArticleListResponse(articles []model.Article, baseURL string) []render.Renderer {
	list := []render.Renderer{}
	for _, article := range articles {
		list = append(list, NewArticleResponse(article, baseURL))
	}

	return list
}

func (rd *ArticleResponse) Render(w http.ResponseWriter, r *http.Request) error {
	// Pre-processing before a response is marshalled and sent across the wire
	if rd.Image != "" {
		rd.ImageURL = ImageURL(rd.baseURL, rd.Image)
	}

	return nil
}

// ImageURL returns the absolute URL an asset filename is served at.
func ImageURL(baseURL, image string) string {
	return strings.TrimRight(baseURL, "/") + UploadsPath + image
}

// PageResponse is the list shape returned when the client asks for a page.
type PageResponse struct {
	Items   []render.Renderer `json:"items"`
	Page    int               `json:"page"`
	PerPage int               `json:"per_page"`
	Total   int               `json:"total"`
	Pages   int               `json:"pages"`
}

func NewPageResponse(items []model.Article, baseURL string, page, perPage, total int) *PageResponse {
	pages := 0
	if perPage > 0 {
		pages = (total + perPage - 1) / perPage
	}

	return &PageResponse{
		Items:   NewArticleListResponse(items, baseURL),
		Page:    page,
		PerPage: perPage,
		Total:   total,
		Pages:   pages,
	}
}

func (p *PageResponse) Render(w http.ResponseWriter, r *http.Request) error {
	for _, item := range p.Items {
		if err := item.Render(w, r); err != nil {
			return err
		}
	}

	return nil
}

type DeleteResponse struct {
	Success bool `json:"success"`
}

func (d *DeleteResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// UploadResponse describes a stored image.
type UploadResponse struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

func (u *UploadResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
