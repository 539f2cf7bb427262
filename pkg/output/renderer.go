package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/outparse/pkg/errors"
	"github.com/arthur-debert/outparse/pkg/logging"
)

// Renderer writes parsed values in one format
type Renderer struct {
	writer io.Writer
	format Format
	styles Styles
	logger zerolog.Logger
}

// NewRenderer creates a renderer. FormatAuto is treated as FormatText;
// callers resolve it against their output device first.
func NewRenderer(w io.Writer, format Format) *Renderer {
	if format == FormatAuto {
		format = FormatText
	}
	return &Renderer{
		writer: w,
		format: format,
		styles: DefaultStyles(),
		logger: logging.GetLogger("output"),
	}
}

// Format returns the concrete format used by r
func (r *Renderer) Format() Format {
	return r.format
}

// Render writes value, which must be built from the JSON data model: maps
// with string keys, slices, strings, numbers, booleans and nil.
func (r *Renderer) Render(value interface{}) error {
	out, err := r.encode(value)
	if err != nil {
		return errors.Wrapf(err, errors.ErrRender, "failed to render %s output", r.format).
			WithDetail("format", r.format.String())
	}
	r.logger.Trace().Str("format", r.format.String()).Int("bytes", len(out)).Msg("rendered value")

	_, err = r.writer.Write(out)
	return err
}

func (r *Renderer) encode(value interface{}) ([]byte, error) {
	switch r.format {
	case FormatJSON:
		out, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(value); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatTOML:
		return toml.Marshal(map[string]interface{}{"result": dropNulls(value)})
	case FormatXML:
		return encodeXML(value)
	case FormatTerminal:
		return []byte(r.terminal(value) + "\n"), nil
	default:
		return []byte(textBlock(value) + "\n"), nil
	}
}

// RenderError writes err. Structured formats get an object carrying the
// error code and details.
func (r *Renderer) RenderError(err error) error {
	switch r.format {
	case FormatJSON, FormatYAML, FormatTOML, FormatXML:
		payload := map[string]interface{}{
			"error": err.Error(),
			"code":  string(errors.GetErrorCode(err)),
		}
		if details := errors.GetErrorDetails(err); len(details) > 0 {
			payload["details"] = details
		}
		return r.Render(payload)
	case FormatTerminal:
		_, writeErr := fmt.Fprintln(r.writer, r.styles.Get("Error").Render("Error:")+" "+err.Error())
		return writeErr
	default:
		_, writeErr := fmt.Fprintln(r.writer, "Error: "+err.Error())
		return writeErr
	}
}

// RenderMessage writes a line using a named style on terminals, plain
// otherwise
func (r *Renderer) RenderMessage(style, message string) error {
	if r.format == FormatTerminal {
		message = r.styles.Get(style).Render(message)
	}
	_, err := fmt.Fprintln(r.writer, message)
	return err
}

// dropNulls removes nil values, which TOML cannot represent
func dropNulls(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, item := range v {
			if item == nil {
				continue
			}
			out[k] = dropNulls(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, 0, len(v))
		for _, item := range v {
			if item == nil {
				continue
			}
			out = append(out, dropNulls(item))
		}
		return out
	default:
		return value
	}
}

func formatScalar(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// isLeaf reports whether value renders on a single line
func isLeaf(value interface{}) bool {
	switch v := value.(type) {
	case map[string]interface{}:
		return len(v) == 0
	case []interface{}:
		return len(v) == 0
	default:
		return true
	}
}

func formatLeaf(value interface{}) string {
	switch value.(type) {
	case map[string]interface{}:
		return "{}"
	case []interface{}:
		return "[]"
	default:
		return formatScalar(value)
	}
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
