package articleservice

import (
	"regexp"
	"strings"

	"github.com/sushihentaime/inkwell/internal/common"
)

var (
	TitleRX = regexp.MustCompile("^[a-zA-Z0-9 ]+$")
)

// orderings maps the accepted ordering keys to their SQL columns.
var orderings = map[string]string{
	"created_at": "a.created_at",
	"views":      "a.views",
	"title":      "a.title",
}

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "must be provided")
	v.Check(v.CheckStringLength(title, 3, 100), "title", "must be between 3 and 100 characters long")
	v.Check(TitleRX.MatchString(title), "title", "must only contain letters, numbers, and spaces")
}

func validateContent(v *common.Validator, content string) {
	v.Check(content != "", "content", "must be provided")
}

func validateExcerpt(v *common.Validator, excerpt string) {
	v.Check(v.CheckStringLength(excerpt, 0, 300), "excerpt", "must not be more than 300 characters long")
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}

// validateOrdering resolves an ordering parameter like "-views" into an
// ORDER BY fragment built only from whitelisted columns.
func validateOrdering(v *common.Validator, ordering string) string {
	if ordering == "" {
		return "a.created_at DESC"
	}

	direction := "ASC"
	key := ordering
	if strings.HasPrefix(ordering, "-") {
		direction = "DESC"
		key = strings.TrimPrefix(ordering, "-")
	}

	column, ok := orderings[key]
	if !ok {
		v.AddError("ordering", "must be one of created_at, views, title with an optional leading -")
		return ""
	}

	return column + " " + direction
}
