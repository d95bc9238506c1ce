package blogservice

import (
	"unicode/utf8"

	"github.com/sushihentaime/blogsphere/internal/common"
)

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "must be provided")
	v.Check(v.CheckStringLength(title, 3, 200), "title", "must be between 3 and 200 characters long")
}

func validateContent(v *common.Validator, content string) {
	v.Check(content != "", "content", "must be provided")
	v.Check(utf8.RuneCountInString(content) >= 10, "content", "must be at least 10 characters long")
}

func validateCreate(v *common.Validator, req *CreateBlogRequest) {
	validateTitle(v, req.Title)
	validateContent(v, req.Content)
}

func validateUpdate(v *common.Validator, req *UpdateBlogRequest) {
	if req.Title != nil {
		validateTitle(v, *req.Title)
	}
	if req.Content != nil {
		validateContent(v, *req.Content)
	}
}
