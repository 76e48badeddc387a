package dom

import (
	"strings"

	"golang.org/x/net/html"
)

const (
	entityClass         = "_Entity"
	entityTypePrefix    = "_EType_"
	entityIDPrefix      = "_EId_"
	entityReadonlyClass = "_EReadonly_1"
)

// EntityInfo is what the wrapper class list tells about an entity.
type EntityInfo struct {
	ID         string
	Type       string
	IsReadonly bool
}

// ParseEntity reads the entity class list of wrapper. ok is false when the
// element isn't an entity wrapper.
func ParseEntity(wrapper *html.Node) (info EntityInfo, ok bool) {
	if wrapper == nil || wrapper.Type != html.ElementNode {
		return info, false
	}
	for _, name := range strings.Fields(GetAttr(wrapper, "class")) {
		switch {
		case name == entityClass:
			ok = true
		case strings.HasPrefix(name, entityTypePrefix):
			info.Type = name[len(entityTypePrefix):]
		case strings.HasPrefix(name, entityIDPrefix):
			info.ID = name[len(entityIDPrefix):]
		case name == entityReadonlyClass:
			info.IsReadonly = true
		}
	}
	return info, ok
}

// SetEntity writes the entity class list on wrapper, keeping unrelated
// classes.
func SetEntity(wrapper *html.Node, info EntityInfo) {
	var classes []string
	for _, name := range strings.Fields(GetAttr(wrapper, "class")) {
		if name == entityClass || name == entityReadonlyClass ||
			strings.HasPrefix(name, entityTypePrefix) || strings.HasPrefix(name, entityIDPrefix) {
			continue
		}
		classes = append(classes, name)
	}
	classes = append(classes, entityClass)
	if info.Type != "" {
		classes = append(classes, entityTypePrefix+info.Type)
	}
	if info.ID != "" {
		classes = append(classes, entityIDPrefix+info.ID)
	}
	if info.IsReadonly {
		classes = append(classes, entityReadonlyClass)
		SetAttr(wrapper, "contenteditable", "false")
	}
	SetAttr(wrapper, "class", strings.Join(classes, " "))
}
