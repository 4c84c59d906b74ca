package todosrepobridge

import (
	"fmt"
	"net/http"
	"time"

	"github.com/taskboard/taskboard/core/repositories/todosrepo"
	"github.com/taskboard/taskboard/sdk/validation"
)

// QueryParams carries the raw filter values lifted off the query string.
type QueryParams struct {
	ID            string
	Status        string
	Priority      string
	Theme         string
	Search        string
	CreatedAfter  string
	CreatedBefore string
	UpdatedAfter  string
	UpdatedBefore string
	DueFrom       string
	DueTo         string
}

func parseQueryParams(r *http.Request) QueryParams {
	q := r.URL.Query()
	return QueryParams{
		ID:            q.Get("id"),
		Status:        q.Get("status"),
		Priority:      q.Get("priority"),
		Theme:         q.Get("theme"),
		Search:        q.Get("search"),
		CreatedAfter:  q.Get("createdAfter"),
		CreatedBefore: q.Get("createdBefore"),
		UpdatedAfter:  q.Get("updatedAfter"),
		UpdatedBefore: q.Get("updatedBefore"),
		DueFrom:       q.Get("dueFrom"),
		DueTo:         q.Get("dueTo"),
	}
}

// parseFilter builds the core filter from raw query values. Unparseable
// dates fail the whole request rather than silently dropping the predicate.
func parseFilter(qp QueryParams) (todosrepo.TodoFilter, error) {
	filter := todosrepo.TodoFilter{
		ID:       validation.StringPtrIfNotEmpty(qp.ID),
		Status:   validation.StringPtrIfNotEmpty(qp.Status),
		Priority: validation.StringPtrIfNotEmpty(qp.Priority),
		Theme:    validation.StringPtrIfNotEmpty(qp.Theme),
		Search:   validation.StringPtrIfNotEmpty(qp.Search),
	}

	if qp.CreatedAfter != "" {
		if t, err := time.Parse(time.RFC3339, qp.CreatedAfter); err == nil {
			filter.CreatedAfter = &t
		} else {
			return filter, fmt.Errorf("invalid createdAfter format: %s", qp.CreatedAfter)
		}
	}
	if qp.CreatedBefore != "" {
		if t, err := time.Parse(time.RFC3339, qp.CreatedBefore); err == nil {
			filter.CreatedBefore = &t
		} else {
			return filter, fmt.Errorf("invalid createdBefore format: %s", qp.CreatedBefore)
		}
	}
	if qp.UpdatedAfter != "" {
		if t, err := time.Parse(time.RFC3339, qp.UpdatedAfter); err == nil {
			filter.UpdatedAfter = &t
		} else {
			return filter, fmt.Errorf("invalid updatedAfter format: %s", qp.UpdatedAfter)
		}
	}
	if qp.UpdatedBefore != "" {
		if t, err := time.Parse(time.RFC3339, qp.UpdatedBefore); err == nil {
			filter.UpdatedBefore = &t
		} else {
			return filter, fmt.Errorf("invalid updatedBefore format: %s", qp.UpdatedBefore)
		}
	}
	if qp.DueFrom != "" {
		if t, err := time.Parse(time.RFC3339, qp.DueFrom); err == nil {
			filter.DueFrom = &t
		} else {
			return filter, fmt.Errorf("invalid dueFrom format: %s", qp.DueFrom)
		}
	}
	if qp.DueTo != "" {
		if t, err := time.Parse(time.RFC3339, qp.DueTo); err == nil {
			filter.DueTo = &t
		} else {
			return filter, fmt.Errorf("invalid dueTo format: %s", qp.DueTo)
		}
	}

	return filter, nil
}
