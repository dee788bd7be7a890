// Package area decodes and queries the JMA area.json and forecast_area.json
// constant tables. Both documents are supplied as bytes by the caller; this
// package never fetches them.
package area

import (
	"encoding/json"
	"fmt"
	"strings"
)

// AreaTableURL is where the upstream agency hosts the area table.
const AreaTableURL = "https://www.jma.go.jp/bosai/common/const/area.json"

// Class is one level of the JMA area hierarchy, from forecast offices down
// to municipalities.
type Class int

const (
	ClassOffices Class = iota
	ClassClass10s
	ClassClass15s
	ClassClass20s
)

var classNames = [...]string{"offices", "class10s", "class15s", "class20s"}

func (c Class) String() string {
	if c < ClassOffices || c > ClassClass20s {
		return fmt.Sprintf("class(%d)", int(c))
	}
	return classNames[c]
}

// ParseClass converts a JSON key ("offices", "class10s", ...) to a Class.
func ParseClass(s string) (Class, error) {
	for i, name := range classNames {
		if s == name {
			return Class(i), nil
		}
	}
	return 0, fmt.Errorf("area class %q not found", s)
}

// Parent returns the next level up. Offices have no parent.
func (c Class) Parent() (Class, bool) {
	if c <= ClassOffices {
		return 0, false
	}
	return c - 1, true
}

// Child returns the next level down. Class20s have no child.
func (c Class) Child() (Class, bool) {
	if c >= ClassClass20s {
		return 0, false
	}
	return c + 1, true
}

// Area is one region at any level of the hierarchy. Code and Class are
// filled in when the area is returned from a query.
type Area struct {
	Name       string   `json:"name"`
	EnName     string   `json:"enName"`
	Parent     string   `json:"parent"`
	OfficeName string   `json:"officeName"`
	Children   []string `json:"children"`

	Code  string `json:"-"`
	Class Class  `json:"-"`
}

// Areas is the decoded area table: one map per hierarchy level, keyed by
// area code.
type Areas struct {
	byClass [ClassClass20s + 1]map[string]Area
}

// ParseAreas decodes an area.json document.
func ParseAreas(data []byte) (*Areas, error) {
	var doc struct {
		Offices  map[string]Area `json:"offices"`
		Class10s map[string]Area `json:"class10s"`
		Class15s map[string]Area `json:"class15s"`
		Class20s map[string]Area `json:"class20s"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse areas: %w", err)
	}
	if len(doc.Offices) == 0 {
		return nil, fmt.Errorf("parse areas: no offices")
	}

	a := &Areas{}
	a.byClass[ClassOffices] = doc.Offices
	a.byClass[ClassClass10s] = doc.Class10s
	a.byClass[ClassClass15s] = doc.Class15s
	a.byClass[ClassClass20s] = doc.Class20s
	return a, nil
}

// Get returns the area with the given code at the given level.
func (a *Areas) Get(class Class, code string) (Area, bool) {
	if class < ClassOffices || class > ClassClass20s {
		return Area{}, false
	}
	found, ok := a.byClass[class][code]
	if !ok {
		return Area{}, false
	}
	found.Code = code
	found.Class = class
	return found, true
}

// ParentOf resolves an area's parent region one level up.
func (a *Areas) ParentOf(area Area) (Area, bool) {
	parentClass, ok := area.Class.Parent()
	if !ok {
		return Area{}, false
	}
	return a.Get(parentClass, area.Parent)
}

// Ancestor walks parents until it reaches the requested level. The area
// itself is returned when it already sits at that level.
func (a *Areas) Ancestor(area Area, class Class) (Area, bool) {
	current := area
	for {
		if current.Class == class {
			return current, true
		}
		parent, ok := a.ParentOf(current)
		if !ok {
			return Area{}, false
		}
		current = parent
	}
}

// Search finds areas at every level whose code matches exactly or whose
// Japanese or English name starts with the keyword. English matching is
// case-insensitive.
func (a *Areas) Search(keyword string) []Area {
	var result []Area
	for class := ClassOffices; class <= ClassClass20s; class++ {
		result = append(result, a.searchClass(class, keyword)...)
	}
	return result
}

// SearchClass20s restricts Search to the municipality level.
func (a *Areas) SearchClass20s(keyword string) []Area {
	return a.searchClass(ClassClass20s, keyword)
}

func (a *Areas) searchClass(class Class, keyword string) []Area {
	lower := strings.ToLower(keyword)
	var result []Area
	for code, area := range a.byClass[class] {
		if code == keyword ||
			strings.HasPrefix(area.Name, keyword) ||
			strings.HasPrefix(strings.ToLower(area.EnName), lower) {
			area.Code = code
			area.Class = class
			result = append(result, area)
		}
	}
	return result
}
