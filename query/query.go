// Package query turns list query strings into filtered, sorted, paginated
// gorm queries over a whitelist of fields.
package query

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"houses-api/apperr"

	"gorm.io/gorm"
)

const (
	DefaultLimit = 25
	MaxLimit     = 100
)

type FieldKind int

const (
	String FieldKind = iota
	Number
	Bool
	Time
)

type Field struct {
	Column string
	Kind   FieldKind
}

// Fields maps a public (JSON) field name to its column.
type Fields map[string]Field

type Filter struct {
	Column string
	Op     string
	Value  interface{}
}

type Params struct {
	Filters []Filter
	Select  []string
	Order   []string
	Page    int
	Limit   int
}

type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type Pagination struct {
	Next *PageRef `json:"next,omitempty"`
	Prev *PageRef `json:"prev,omitempty"`
}

var filterKey = regexp.MustCompile(`^([A-Za-z_]+)(?:\[(gt|gte|lt|lte|in|ne)\])?$`)

var sqlOps = map[string]string{
	"":    "=",
	"gt":  ">",
	"gte": ">=",
	"lt":  "<",
	"lte": "<=",
	"ne":  "<>",
	"in":  "IN",
}

var reserved = map[string]bool{"select": true, "sort": true, "page": true, "limit": true}

// Parse builds Params from a query string. Any field outside fields is a validation error.
func Parse(values url.Values, fields Fields) (*Params, error) {
	p := &Params{Page: 1, Limit: DefaultLimit}

	for key, vals := range values {
		if reserved[key] || len(vals) == 0 {
			continue
		}
		m := filterKey.FindStringSubmatch(key)
		if m == nil {
			return nil, apperr.Validation("invalid filter %q", key)
		}
		f, ok := fields[m[1]]
		if !ok {
			return nil, apperr.Validation("cannot filter on %q", m[1])
		}
		op := m[2]
		raw := vals[len(vals)-1]

		var value interface{}
		if op == "in" {
			parts := strings.Split(raw, ",")
			list := make([]interface{}, 0, len(parts))
			for _, part := range parts {
				v, err := convert(f.Kind, strings.TrimSpace(part))
				if err != nil {
					return nil, apperr.Validation("invalid value for %s: %v", m[1], err)
				}
				list = append(list, v)
			}
			value = list
		} else {
			v, err := convert(f.Kind, raw)
			if err != nil {
				return nil, apperr.Validation("invalid value for %s: %v", m[1], err)
			}
			value = v
		}
		p.Filters = append(p.Filters, Filter{Column: f.Column, Op: sqlOps[op], Value: value})
	}

	if sel := values.Get("select"); sel != "" {
		p.Select = append(p.Select, "id")
		for _, name := range strings.Split(sel, ",") {
			name = strings.TrimSpace(name)
			if name == "" || name == "id" {
				continue
			}
			f, ok := fields[name]
			if !ok {
				return nil, apperr.Validation("cannot select %q", name)
			}
			p.Select = append(p.Select, f.Column)
		}
	}

	sort := values.Get("sort")
	if sort == "" {
		sort = "-createdAt"
	}
	for _, name := range strings.Split(sort, ",") {
		name = strings.TrimSpace(name)
		dir := "ASC"
		if strings.HasPrefix(name, "-") {
			dir = "DESC"
			name = name[1:]
		}
		if name == "" {
			continue
		}
		f, ok := fields[name]
		if !ok {
			return nil, apperr.Validation("cannot sort by %q", name)
		}
		p.Order = append(p.Order, f.Column+" "+dir)
	}
	// Stable paging across equal sort keys.
	p.Order = append(p.Order, "id ASC")

	var err error
	if v := values.Get("page"); v != "" {
		if p.Page, err = strconv.Atoi(v); err != nil || p.Page < 1 {
			return nil, apperr.Validation("page must be a positive integer")
		}
	}
	if v := values.Get("limit"); v != "" {
		if p.Limit, err = strconv.Atoi(v); err != nil || p.Limit < 1 {
			return nil, apperr.Validation("limit must be a positive integer")
		}
		if p.Limit > MaxLimit {
			p.Limit = MaxLimit
		}
	}
	// The row offset must fit in a 32-bit integer.
	if p.Page-1 > math.MaxInt32/p.Limit {
		return nil, apperr.Validation("page %d is out of range", p.Page)
	}

	return p, nil
}

func convert(kind FieldKind, raw string) (interface{}, error) {
	switch kind {
	case Number:
		return strconv.ParseFloat(raw, 64)
	case Bool:
		return strconv.ParseBool(raw)
	case Time:
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t, nil
		}
		return time.Parse("2006-01-02", raw)
	default:
		return raw, nil
	}
}

// Where applies the filters only; use it for counting.
func (p *Params) Where(tx *gorm.DB) *gorm.DB {
	for _, f := range p.Filters {
		tx = tx.Where(fmt.Sprintf("%s %s ?", f.Column, f.Op), f.Value)
	}
	return tx
}

// Scope applies filters, projection, ordering and the page window.
func (p *Params) Scope(tx *gorm.DB) *gorm.DB {
	tx = p.Where(tx)
	if len(p.Select) > 0 {
		tx = tx.Select(p.Select)
	}
	for _, o := range p.Order {
		tx = tx.Order(o)
	}
	return tx.Offset((p.Page - 1) * p.Limit).Limit(p.Limit)
}

// Paginate describes the neighbouring pages given the total number of matches.
func (p *Params) Paginate(total int64) Pagination {
	var pg Pagination
	if int64(p.Page)*int64(p.Limit) < total {
		pg.Next = &PageRef{Page: p.Page + 1, Limit: p.Limit}
	}
	if p.Page > 1 {
		pg.Prev = &PageRef{Page: p.Page - 1, Limit: p.Limit}
	}
	return pg
}
