package httpclient

import "net/url"

// Params holds request parameters. Encoding is deterministic: keys are
// sorted and the values of a key keep their insertion order.
//
// A nil *Params is valid and encodes to the empty string.
type Params struct {
	values url.Values
}

// NewParams returns an empty parameter map.
func NewParams() *Params {
	return &Params{values: url.Values{}}
}

// Add appends value to key. Calls may be chained.
func (p *Params) Add(key, value string) *Params {
	p.init()
	p.values.Add(key, value)
	return p
}

// Set replaces all values of key. Calls may be chained.
func (p *Params) Set(key, value string) *Params {
	p.init()
	p.values.Set(key, value)
	return p
}

func (p *Params) init() {
	if p.values == nil {
		p.values = url.Values{}
	}
}

// Len returns the number of distinct keys.
func (p *Params) Len() int {
	if p == nil {
		return 0
	}

	return len(p.values)
}

// Encode returns the URL-encoded form ("a=1&b=x+y").
func (p *Params) Encode() string {
	if p == nil {
		return ""
	}

	return p.values.Encode()
}

// Values returns a copy of the underlying values.
func (p *Params) Values() url.Values {
	if p == nil {
		return url.Values{}
	}

	out := make(url.Values, len(p.values))
	for k, v := range p.values {
		out[k] = append([]string(nil), v...)
	}

	return out
}
