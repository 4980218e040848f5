package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"

	"github.com/piwi3910/FormPanel/internal/engine"
	"github.com/piwi3910/FormPanel/internal/model"
)

// Request is the canonical optimization request, as posted to /optimize.
type Request struct {
	Castings       []CastingInput `json:"castings" validate:"required,min=1,dive"`
	PrimaryCasting string         `json:"primaryCasting" validate:"required"`
}

// CastingInput is one casting of a Request.
type CastingInput struct {
	Name   string       `json:"name" validate:"required"`
	Shapes []ShapeInput `json:"shapes" validate:"required,min=1,dive"`
}

// ShapeInput is one shape of a Request. Sides are decoded as numbers so that
// fractional lengths are reported instead of silently truncated.
type ShapeInput struct {
	Name  string    `json:"name" validate:"required"`
	Sides []float64 `json:"sides" validate:"required,min=1"`
}

var validate = validator.New()

// Validate checks the request envelope. Side values are checked by
// ToCastings so errors can name the casting, shape and side.
func (r *Request) Validate() error {
	return validationError(validate.Struct(r), "Request.")
}

// validationError flattens validator output into one ErrInvalidInput.
func validationError(err error, prefix string) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", engine.ErrInvalidInput, err)
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = fmt.Sprintf("%s failed on %q", strings.TrimPrefix(fe.Namespace(), prefix), fe.Tag())
	}
	return fmt.Errorf("%w: %s", engine.ErrInvalidInput, strings.Join(msgs, "; "))
}

// ToCastings converts the request into castings, rejecting fractional side
// lengths.
func (r *Request) ToCastings() ([]model.Casting, error) {
	return toCastings(r.Castings)
}

// CastingsRequest carries castings without a primary selection, as posted
// to /compare.
type CastingsRequest struct {
	Castings []CastingInput `json:"castings" validate:"required,min=1,dive"`
}

// DecodeCastingsRequest reads, validates and converts a CastingsRequest.
func DecodeCastingsRequest(r io.Reader) ([]model.Casting, error) {
	var req CastingsRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return nil, fmt.Errorf("%w: malformed request: %w", engine.ErrInvalidInput, err)
	}
	if err := validationError(validate.Struct(&req), "CastingsRequest."); err != nil {
		return nil, err
	}
	return toCastings(req.Castings)
}

func toCastings(inputs []CastingInput) ([]model.Casting, error) {
	castings := make([]model.Casting, 0, len(inputs))
	for _, ci := range inputs {
		c := model.NewCasting(ci.Name)
		for _, si := range ci.Shapes {
			sides := make([]int, len(si.Sides))
			for i, v := range si.Sides {
				n, err := wholeMillimetres(v)
				if err != nil {
					return nil, &engine.InputError{
						Casting: ci.Name,
						Shape:   si.Name,
						Side:    i + 1,
						Reason:  fmt.Sprintf("side length %g: %v", v, err),
					}
				}
				sides[i] = n
			}
			c.AddShape(model.NewShape(si.Name, sides...))
		}
		castings = append(castings, c)
	}
	return castings, nil
}

// NewRequest builds a canonical request from castings.
func NewRequest(castings []model.Casting, primary string) Request {
	req := Request{PrimaryCasting: primary, Castings: make([]CastingInput, len(castings))}
	for i, c := range castings {
		ci := CastingInput{Name: c.Name, Shapes: make([]ShapeInput, len(c.Shapes))}
		for j, s := range c.Shapes {
			sides := make([]float64, len(s.Sides))
			for k, l := range s.Sides {
				sides[k] = float64(l)
			}
			ci.Shapes[j] = ShapeInput{Name: s.Name, Sides: sides}
		}
		req.Castings[i] = ci
	}
	return req
}

// DecodeRequest reads, validates and converts a canonical request.
func DecodeRequest(r io.Reader) (Request, []model.Casting, error) {
	var req Request
	dec := json.NewDecoder(r)
	if err := dec.Decode(&req); err != nil {
		return Request{}, nil, fmt.Errorf("%w: malformed request: %w", engine.ErrInvalidInput, err)
	}
	if err := req.Validate(); err != nil {
		return Request{}, nil, err
	}
	castings, err := req.ToCastings()
	if err != nil {
		return Request{}, nil, err
	}
	return req, castings, nil
}

// nestedSchema describes the saved-castings file: casting name to shape name
// to side label to length.
const nestedSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "minProperties": 1,
  "additionalProperties": {
    "type": "object",
    "minProperties": 1,
    "additionalProperties": {
      "type": "object",
      "minProperties": 1,
      "additionalProperties": {
        "type": "integer",
        "exclusiveMinimum": 0
      }
    }
  }
}`

var nestedSchemaLoader = gojsonschema.NewStringLoader(nestedSchema)

// ValidateNested checks data against the nested castings schema.
func ValidateNested(data []byte) error {
	result, err := gojsonschema.Validate(nestedSchemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("%w: malformed castings file: %v", engine.ErrInvalidInput, err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	sort.Strings(msgs)
	return fmt.Errorf("%w: %s", engine.ErrInvalidInput, strings.Join(msgs, "; "))
}

// DecodeNested parses the nested castings format. Object key order is the
// order of castings, shapes and sides, so the document is walked token by
// token instead of being unmarshaled into maps.
func DecodeNested(data []byte) ([]model.Casting, error) {
	if err := ValidateNested(data); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var castings []model.Casting
	err := walkObject(dec, func(castingName string) error {
		c := model.NewCasting(castingName)
		err := walkObject(dec, func(shapeName string) error {
			var sides []int
			err := walkObject(dec, func(sideLabel string) error {
				tok, err := dec.Token()
				if err != nil {
					return err
				}
				num, ok := tok.(json.Number)
				if !ok {
					return fmt.Errorf("side %q of %s / %s is not a number", sideLabel, castingName, shapeName)
				}
				n, err := strconv.Atoi(num.String())
				if err != nil {
					if n, err = parseLength(num.String()); err != nil {
						return fmt.Errorf("side %q of %s / %s: %v", sideLabel, castingName, shapeName, err)
					}
				}
				sides = append(sides, n)
				return nil
			})
			if err != nil {
				return err
			}
			c.AddShape(model.NewShape(shapeName, sides...))
			return nil
		})
		if err != nil {
			return err
		}
		castings = append(castings, c)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", engine.ErrInvalidInput, err)
	}
	return castings, nil
}

// walkObject consumes one JSON object from dec, calling fn for each key with
// the decoder positioned at the key's value.
func walkObject(dec *json.Decoder, fn func(key string) error) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		if err := fn(key); err != nil {
			return err
		}
	}
	_, err = dec.Token() // closing brace
	return err
}

// isCanonical reports whether data looks like a canonical request, i.e. has a
// top-level "castings" array.
func isCanonical(data []byte) bool {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return false
	}
	raw, ok := probe["castings"]
	return ok && len(bytes.TrimSpace(raw)) > 0 && bytes.TrimSpace(raw)[0] == '['
}

// ImportJSONData imports either the canonical request or the nested format.
func ImportJSONData(data []byte) ImportResult {
	result := ImportResult{}
	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	if isCanonical(data) {
		req, castings, err := DecodeRequest(bytes.NewReader(data))
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
			return result
		}
		result.Castings = castings
		result.Primary = req.PrimaryCasting
		return result
	}

	castings, err := DecodeNested(data)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}
	result.Castings = castings
	result.Warnings = append(result.Warnings, "Nested castings file carries no primary selection")
	return result
}

// ImportJSON imports castings from a JSON file in either supported format.
func ImportJSON(path string) ImportResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open file: %v", err)}}
	}
	return ImportJSONData(data)
}

// ParseSideList parses a manually entered list of side lengths such as
// "700, 650, 700, 650". Commas, semicolons and whitespace separate values.
func ParseSideList(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n'
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no side lengths given", engine.ErrInvalidInput)
	}
	sides := make([]int, len(fields))
	for i, f := range fields {
		n, err := parseLength(f)
		if err != nil {
			return nil, fmt.Errorf("%w: side %d %q: %v", engine.ErrInvalidInput, i+1, f, err)
		}
		if n <= 0 {
			return nil, fmt.Errorf("%w: side %d must be positive", engine.ErrInvalidInput, i+1)
		}
		sides[i] = n
	}
	return sides, nil
}
