package dtos

// PageQuery is the 1-indexed page/size pair every list endpoint accepts.
type PageQuery struct {
	Page int `form:"page,default=1"`
	Size int `form:"size,default=20"`
}

// Clamp bounds page and size to sane values.
func (p *PageQuery) Clamp() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Size < 1 {
		p.Size = 20
	}
	if p.Size > 100 {
		p.Size = 100
	}
}

func (p PageQuery) Offset() int {
	return (p.Page - 1) * p.Size
}

type ListResponse[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
}
