package petlookup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/buger/jsonparser"
)

// Parser validates lookup service bodies and extracts pet records
type Parser struct{}

// NewParser creates a new parser
func NewParser() *Parser {
	return &Parser{}
}

// errInvalidJSON marks a body that is not a single well-formed JSON document
var errInvalidJSON = errors.New("invalid JSON document")

// ParsePet decodes a single pet object
func (p *Parser) ParsePet(path string, data []byte) (*PetRecord, error) {
	if !json.Valid(data) {
		return nil, &ParseError{Path: path, Err: errInvalidJSON}
	}
	value, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if dataType != jsonparser.Object {
		return nil, &MalformedError{Path: path, Reason: fmt.Sprintf("expected object, got %s", dataType)}
	}

	rec, reason := p.parseRecord(value)
	if reason != "" {
		return nil, &MalformedError{Path: path, Reason: reason}
	}
	return rec, nil
}

// ParsePetList decodes an array of pet objects, preserving order.
// An empty array yields a non-nil empty slice.
func (p *Parser) ParsePetList(path string, data []byte) ([]PetRecord, error) {
	if !json.Valid(data) {
		return nil, &ParseError{Path: path, Err: errInvalidJSON}
	}
	value, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if dataType != jsonparser.Array {
		return nil, &MalformedError{Path: path, Reason: fmt.Sprintf("expected array, got %s", dataType)}
	}

	pets := make([]PetRecord, 0)
	var reason string
	idx := 0
	_, err = jsonparser.ArrayEach(value, func(elem []byte, elemType jsonparser.ValueType, offset int, err error) {
		if reason != "" {
			return
		}
		if err != nil {
			reason = fmt.Sprintf("[%d]: %v", idx, err)
			return
		}
		if elemType != jsonparser.Object {
			reason = fmt.Sprintf("[%d]: expected object, got %s", idx, elemType)
			return
		}
		rec, why := p.parseRecord(elem)
		if why != "" {
			reason = fmt.Sprintf("[%d]: %s", idx, why)
			return
		}
		pets = append(pets, *rec)
		idx++
	})
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if reason != "" {
		return nil, &MalformedError{Path: path, Reason: reason}
	}

	return pets, nil
}

// parseRecord checks the fields every pet must carry.
// Returns a non-empty reason when the object is not a pet.
func (p *Parser) parseRecord(obj []byte) (*PetRecord, string) {
	idVal, idType, _, err := jsonparser.Get(obj, "id")
	if err != nil {
		return nil, "missing field: id"
	}
	if idType != jsonparser.Number {
		return nil, fmt.Sprintf("field id: expected number, got %s", idType)
	}
	id, err := jsonparser.ParseInt(idVal)
	if err != nil {
		return nil, fmt.Sprintf("field id: %v", err)
	}

	name, reason := p.stringField(obj, "name")
	if reason != "" {
		return nil, reason
	}
	typeName, reason := p.stringField(obj, "type")
	if reason != "" {
		return nil, reason
	}
	pt := PetType(typeName)
	if !pt.Valid() {
		return nil, fmt.Sprintf("field type: unknown pet type %q", typeName)
	}

	raw := make([]byte, len(obj))
	copy(raw, obj)

	return &PetRecord{ID: id, Name: name, Type: pt, Raw: raw}, ""
}

func (p *Parser) stringField(obj []byte, key string) (string, string) {
	val, dataType, _, err := jsonparser.Get(obj, key)
	if err != nil {
		return "", "missing field: " + key
	}
	if dataType != jsonparser.String {
		return "", fmt.Sprintf("field %s: expected string, got %s", key, dataType)
	}
	s, err := jsonparser.ParseString(val)
	if err != nil {
		return "", fmt.Sprintf("field %s: %v", key, err)
	}
	return s, ""
}

// PrettyJSON indents raw JSON for display, falling back to the input
func PrettyJSON(raw []byte) string {
	var buf bytes.Buffer
	if json.Indent(&buf, raw, "", "  ") == nil {
		return buf.String()
	}
	return string(raw)
}
