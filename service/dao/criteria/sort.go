package criteria

import (
	"fmt"
	"strings"

	"github.com/viant/thurgood/model"
	"github.com/viant/thurgood/service/dao"
)

// JobOrder returns job comparator for "createdAt", "updatedAt" optionally prefixed with "-" for descending
func JobOrder(spec string) (dao.Less[model.Job], error) {
	if spec == "" {
		return nil, nil
	}
	desc := strings.HasPrefix(spec, "-")
	field := strings.TrimPrefix(strings.TrimPrefix(spec, "-"), "+")
	var less dao.Less[model.Job]
	switch field {
	case "createdAt":
		less = func(a, b *model.Job) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case "updatedAt":
		less = func(a, b *model.Job) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	default:
		return nil, fmt.Errorf("unsupported sort field: %v", field)
	}
	if desc {
		asc := less
		less = func(a, b *model.Job) bool { return asc(b, a) }
	}
	return less, nil
}
