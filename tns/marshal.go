package tns

import "encoding/json"

// entryView is the structural form of an entry used by JSON and YAML
// output.
type entryView struct {
	Services   []string       `json:"services"   yaml:"services"`
	Descriptor *parameterView `json:"descriptor" yaml:"descriptor"`
}

type parameterView struct {
	Name       string           `json:"name"                 yaml:"name"`
	Value      string           `json:"value,omitempty"      yaml:"value,omitempty"`
	Parameters []*parameterView `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// MarshalJSON implements json.Marshaler for Document.
func (d *Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.view())
}

// MarshalJSON implements json.Marshaler for Entry.
func (e *Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.view())
}

// MarshalJSON implements json.Marshaler for Parameter.
func (p *Parameter) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.view())
}

func (d *Document) view() []*entryView {
	views := make([]*entryView, len(d.entries))
	for i, e := range d.entries {
		views[i] = e.view()
	}

	return views
}

func (e *Entry) view() *entryView {
	return &entryView{
		Services:   e.Services(),
		Descriptor: e.parameter.view(),
	}
}

func (p *Parameter) view() *parameterView {
	if p == nil {
		return nil
	}

	v := &parameterView{Name: p.name}

	if a, ok := p.Atom(); ok {
		v.Value = a

		return v
	}

	for _, c := range p.Children() {
		v.Parameters = append(v.Parameters, c.view())
	}

	return v
}
