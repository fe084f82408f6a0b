package layout

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Parse validates a layout document (YAML or JSON) against a target matrix
// size. Every violation in the document is collected and returned together in
// a *ValidationError; no Schema is returned in that case.
func Parse(document []byte, width, height int) (*Schema, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("layout target must be positive, got %dx%d", width, height)
	}

	p := &parser{width: width, height: height}
	schema := &Schema{width: width, height: height, elements: make(map[string]ElementSpec)}

	var root yaml.Node
	if err := yaml.Unmarshal(document, &root); err != nil {
		p.add("", NotMapping, 0, "document is not valid YAML/JSON: %v", err)
		return nil, p.result()
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		p.add("", NotMapping, root.Line, "document must be a mapping of element names")
		return nil, p.result()
	}

	doc := root.Content[0]
	for i := 0; i+1 < len(doc.Content); i += 2 {
		keyNode, valueNode := doc.Content[i], doc.Content[i+1]
		name := keyNode.Value
		if _, dup := schema.elements[name]; dup {
			p.add(name, DuplicateKey, keyNode.Line, "element %q defined more than once", name)
			continue
		}
		if valueNode.Kind != yaml.MappingNode {
			p.add(name, BadType, valueNode.Line, "element must be a mapping")
			continue
		}
		spec := p.element(name, name, valueNode)
		p.require(name, spec, known[name])
		schema.elements[name] = spec
		schema.order = append(schema.order, name)
	}

	if err := p.result(); err != nil {
		return nil, err
	}
	return schema, nil
}

type parser struct {
	width, height int
	violations    []Violation
}

func (p *parser) add(element string, kind ViolationKind, line int, format string, args ...interface{}) {
	p.violations = append(p.violations, Violation{
		Element: element,
		Kind:    kind,
		Line:    line,
		Message: fmt.Sprintf(format, args...),
	})
}

func (p *parser) result() error {
	if len(p.violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: p.violations}
}

func (p *parser) element(name, path string, node *yaml.Node) ElementSpec {
	spec := ElementSpec{Name: name, keys: make(map[string]bool, len(node.Content)/2)}
	seen := make(map[string]bool, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		key := keyNode.Value
		if seen[key] {
			p.add(path+"."+key, DuplicateKey, keyNode.Line, "key %q defined more than once", key)
			continue
		}
		seen[key] = true
		spec.keys[key] = true

		switch key {
		case "x":
			if v, ok := p.integer(path, key, valueNode); ok {
				spec.X = v
				if v < 0 || v >= p.width {
					p.add(path, OutOfBounds, valueNode.Line, "x=%d outside [0,%d)", v, p.width)
				}
			}
		case "y":
			if v, ok := p.integer(path, key, valueNode); ok {
				spec.Y = v
				if v < 0 || v >= p.height {
					p.add(path, OutOfBounds, valueNode.Line, "y=%d outside [0,%d)", v, p.height)
				}
			}
		case "max_width":
			spec.MaxWidth, _ = p.extent(path, key, valueNode, p.width)
		case "max_height":
			spec.MaxHeight, _ = p.extent(path, key, valueNode, p.height)
		case "size":
			spec.Size, _ = p.extent(path, key, valueNode, min(p.width, p.height))
		case "font", "font_ref":
			spec.Font, _ = p.str(path, key, valueNode)
		case "asset":
			spec.Asset, _ = p.str(path, key, valueNode)
		case KeyColor, KeyColorOn, KeyColorOff:
			if c, ok := p.color(path, key, valueNode); ok {
				if spec.Colors == nil {
					spec.Colors = make(map[string]RGB, 1)
				}
				spec.Colors[key] = c
			}
		default:
			if valueNode.Kind != yaml.MappingNode {
				// Unknown scalar keys are left for forward compatibility.
				continue
			}
			if spec.Children == nil {
				spec.Children = make(map[string]ElementSpec)
			}
			spec.Children[key] = p.element(key, path+"."+key, valueNode)
		}
	}

	if spec.keys["x"] != spec.keys["y"] {
		missing := "y"
		if !spec.keys["x"] {
			missing = "x"
		}
		p.add(path, MissingKey, node.Line, "missing required key %q", missing)
	}
	return spec
}

// require checks the known-element table; unknown elements pass.
func (p *parser) require(path string, spec ElementSpec, req requirement) {
	for _, key := range req.keys {
		if !specHas(spec, key) {
			p.add(path, MissingKey, 0, "missing required key %q", key)
		}
	}
	for _, childName := range childOrder {
		if _, wanted := req.children[childName]; !wanted {
			continue
		}
		child, ok := spec.Children[childName]
		if !ok {
			p.add(path+"."+childName, MissingKey, 0, "missing required element %q", childName)
			continue
		}
		for _, key := range req.children[childName] {
			if !specHas(child, key) {
				p.add(path+"."+childName, MissingKey, 0, "missing required key %q", key)
			}
		}
	}
}

// specHas reports presence, not validity; invalid values were already reported.
func specHas(spec ElementSpec, key string) bool {
	if key == "x" || key == "y" {
		// A half-specified anchor is reported once by element().
		return spec.keys["x"] || spec.keys["y"]
	}
	return spec.keys[key]
}

func (p *parser) integer(path, key string, node *yaml.Node) (int, bool) {
	if node.Kind != yaml.ScalarNode || node.Tag != "!!int" {
		p.add(path, BadType, node.Line, "%s must be an integer, got %q", key, node.Value)
		return 0, false
	}
	v, err := strconv.ParseInt(node.Value, 0, 64)
	if err != nil {
		p.add(path, BadType, node.Line, "%s must be an integer: %v", key, err)
		return 0, false
	}
	return int(v), true
}

func (p *parser) positive(path, key string, node *yaml.Node) (int, bool) {
	v, ok := p.integer(path, key, node)
	if !ok {
		return 0, false
	}
	if v <= 0 {
		p.add(path, BadType, node.Line, "%s must be positive, got %d", key, v)
		return 0, false
	}
	return v, true
}

// extent is a positive size that must also fit the matrix (at most limit).
func (p *parser) extent(path, key string, node *yaml.Node, limit int) (int, bool) {
	v, ok := p.positive(path, key, node)
	if !ok {
		return 0, false
	}
	if v > limit {
		p.add(path, OutOfBounds, node.Line, "%s=%d exceeds %d", key, v, limit)
		return 0, false
	}
	return v, true
}

func (p *parser) str(path, key string, node *yaml.Node) (string, bool) {
	if node.Kind != yaml.ScalarNode {
		p.add(path, BadType, node.Line, "%s must be a string", key)
		return "", false
	}
	return node.Value, true
}

func (p *parser) color(path, key string, node *yaml.Node) (RGB, bool) {
	if node.Kind != yaml.ScalarNode {
		p.add(path, BadColor, node.Line, "%s must be a color literal", key)
		return RGB{}, false
	}
	if node.Tag == "!!int" {
		v, err := strconv.ParseUint(node.Value, 0, 32)
		if err != nil || v > 0xFFFFFF {
			p.add(path, BadColor, node.Line, "%s=%s is not a 24-bit color", key, node.Value)
			return RGB{}, false
		}
		return RGBFromUint(uint32(v)), true
	}
	c, err := ParseColor(node.Value)
	if err != nil {
		p.add(path, BadColor, node.Line, "%s: %v", key, err)
		return RGB{}, false
	}
	return c, true
}
