package chart

import (
	"html/template"
	"io"
)

var containerTemplate = template.Must(template.New("container").Parse(
	`<div id="{{.ContainerID}}" class="{{.ContainerClass}}"></div>`))

// ContainerRenderer writes the element the chart mounts into. The server emits
// it on every page load; the client only ever renders into it.
type ContainerRenderer struct {
	spec *Spec
}

func NewContainerRenderer(s *Spec) *ContainerRenderer {
	return &ContainerRenderer{spec: s}
}

func (r *ContainerRenderer) Render(w io.Writer) error {
	return containerTemplate.Execute(w, map[string]string{
		"ContainerID":    r.spec.ContainerID(),
		"ContainerClass": r.spec.ContainerClass(),
	})
}
