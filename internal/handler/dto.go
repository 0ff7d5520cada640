package handler

import (
	"github.com/msomdec/imageshare/internal/domain"
)

// timeFormat is ISO 8601 in UTC with millisecond precision.
const timeFormat = "2006-01-02T15:04:05.000Z07:00"

// PostDTO is the JSON representation of a post.
type PostDTO struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImagePath   string `json:"imagePath"`
	ImageType   string `json:"imageType"`
	Likes       int64  `json:"likes"`
	Dislikes    int64  `json:"dislikes"`
	CreatedAt   string `json:"createdAt"`
}

func toPostDTO(p *domain.Post) PostDTO {
	return PostDTO{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		ImagePath:   p.ImagePath,
		ImageType:   p.ImageType,
		Likes:       p.Likes,
		Dislikes:    p.Dislikes,
		CreatedAt:   p.CreatedAt.UTC().Format(timeFormat),
	}
}

func toPostDTOs(posts []domain.Post) []PostDTO {
	dtos := make([]PostDTO, len(posts))
	for i := range posts {
		dtos[i] = toPostDTO(&posts[i])
	}
	return dtos
}
