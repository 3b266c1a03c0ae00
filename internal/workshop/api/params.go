package api

import "strconv"

// Params collects query parameters for list and search endpoints.
// Empty and unset values are skipped so callers can pass optional filters
// without conditionals.
type Params struct {
	values map[string]string
}

// NewParams returns an empty parameter set.
func NewParams() *Params {
	return &Params{values: map[string]string{}}
}

// Set adds a string parameter unless the value is empty.
func (p *Params) Set(key, value string) *Params {
	if value != "" {
		p.values[key] = value
	}
	return p
}

// SetInt adds an integer parameter.
func (p *Params) SetInt(key string, value int64) *Params {
	p.values[key] = strconv.FormatInt(value, 10)
	return p
}

// SetIntPtr adds an integer parameter when the pointer is non-nil.
func (p *Params) SetIntPtr(key string, value *int64) *Params {
	if value != nil {
		p.values[key] = strconv.FormatInt(*value, 10)
	}
	return p
}

// SetPage adds a page parameter when it is positive; page 0 means
// "let the server pick", mirroring unpaged list calls.
func (p *Params) SetPage(page int) *Params {
	if page > 0 {
		p.values["page"] = strconv.Itoa(page)
	}
	return p
}

// SetBool adds a boolean parameter only when the value is true, matching
// filters that treat absence as false.
func (p *Params) SetBool(key string, value bool) *Params {
	if value {
		p.values[key] = "true"
	}
	return p
}

// Map returns the collected values, or nil when nothing was set.
func (p *Params) Map() map[string]string {
	if p == nil || len(p.values) == 0 {
		return nil
	}
	return p.values
}
