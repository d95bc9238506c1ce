package commentservice

import (
	"strings"

	"github.com/sushihentaime/blogsphere/internal/common"
)

func validateContent(v *common.Validator, content string) {
	v.Check(strings.TrimSpace(content) != "", "content", "must be provided")
	v.Check(v.CheckStringLength(content, 1, 1000), "content", "must not be more than 1000 characters long")
}
