package output

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/beevik/etree"
)

var xmlName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9._-]*$`)

// encodeXML writes value under a <result> root. Object keys become element
// names when they are valid XML names, otherwise <field name="..."> is used.
// Array items are <item> elements.
func encodeXML(value interface{}) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	appendXML(doc.CreateElement("result"), value)
	doc.Indent(2)

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func appendXML(el *etree.Element, value interface{}) {
	switch v := value.(type) {
	case map[string]interface{}:
		el.CreateAttr("type", "object")
		for _, key := range sortedKeys(v) {
			appendXML(fieldElement(el, key), v[key])
		}
	case []interface{}:
		el.CreateAttr("type", "array")
		for _, item := range v {
			appendXML(el.CreateElement("item"), item)
		}
	case nil:
		el.CreateAttr("null", "true")
	case string:
		el.SetText(v)
	case bool:
		el.CreateAttr("type", "boolean")
		el.SetText(formatScalar(v))
	default:
		el.CreateAttr("type", "number")
		el.SetText(formatScalar(v))
	}
}

func fieldElement(parent *etree.Element, key string) *etree.Element {
	if xmlName.MatchString(key) && !strings.HasPrefix(strings.ToLower(key), "xml") {
		return parent.CreateElement(key)
	}
	el := parent.CreateElement("field")
	el.CreateAttr("name", key)
	return el
}
