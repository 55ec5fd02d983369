package annotation

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/ironsheep/groundviz/internal/geometry"
)

const (
	phraseOpen  = "<p>"
	phraseClose = "</p>"
	groupDelim  = "<delim>"
)

var integerPattern = regexp.MustCompile(`-?\d+`)

// Parser turns annotation strings into entities and boxes.
//
// The zero value is ready to use and scales against geometry.ScaleExtent.
type Parser struct {
	// Extent is the size of the model's coordinate grid. Zero means
	// geometry.ScaleExtent.
	Extent float64
}

// Parse interprets text with a zero-value Parser.
func Parse(text string, width, height int) Result {
	var p Parser
	return p.Parse(text, width, height)
}

// Parse extracts entities from text and scales their boxes to a width x height
// image.
//
// Parse never fails: it returns ModeGrounded when tagged phrases with valid groups
// are present, otherwise ModeSingle when the text holds four integers, otherwise
// ModeNone. See the package documentation for the grammar.
func (p *Parser) Parse(text string, width, height int) Result {
	extent := p.Extent
	if extent <= 0 {
		extent = geometry.ScaleExtent
	}

	segments := phraseSegments(truncateAtLastGroup(text))
	if len(segments) > 0 {
		entities := parseGrounded(segments, extent, width, height)
		if len(entities) == 0 {
			return Result{Mode: ModeNone}
		}
		return Result{Mode: ModeGrounded, Entities: entities}
	}

	ints := integerPattern.FindAllString(text, 4)
	if len(ints) < 4 {
		return Result{Mode: ModeNone}
	}
	box, err := toBox(ints, extent, width, height)
	if err != nil {
		log.Warn("dropping region", "err", err)
		return Result{Mode: ModeNone}
	}
	return Result{
		Mode:     ModeSingle,
		Entities: []Entity{{Boxes: []Box{box}}},
	}
}

// truncateAtLastGroup cuts text after its last closing brace, dropping a trailing
// partial group.
func truncateAtLastGroup(text string) string {
	if i := strings.LastIndexByte(text, '}'); i >= 0 {
		return text[:i+1]
	}
	return text
}

// phraseSegments returns the text between each "<p>" and the brace that closes the
// last coordinate group chained to it. A segment never spans a newline.
func phraseSegments(text string) []string {
	var segments []string
	pos := 0
	for pos < len(text) {
		start := strings.Index(text[pos:], phraseOpen)
		if start < 0 {
			break
		}
		start += pos
		body := start + len(phraseOpen)

		end := closingBrace(text, body)
		if end < 0 {
			pos = start + 1
			continue
		}
		segments = append(segments, text[body:end])
		pos = end + 1
	}
	return segments
}

// closingBrace finds the first '}' at or after from that is not followed by
// another group, either back to back or after "<delim>". It returns -1 when a
// newline or the end of text comes first.
func closingBrace(text string, from int) int {
	for i := from; i < len(text); i++ {
		switch text[i] {
		case '\n':
			return -1
		case '}':
			rest := text[i+1:]
			if strings.HasPrefix(rest, "{") || strings.HasPrefix(rest, groupDelim) {
				continue
			}
			return i
		}
	}
	return -1
}

func parseGrounded(segments []string, extent float64, width, height int) []Entity {
	var entities []Entity
	index := make(map[string]int)

	for _, seg := range segments {
		parts := strings.Split(seg, phraseClose)
		if len(parts) != 2 {
			log.Warn("skipping malformed phrase", "segment", seg)
			continue
		}
		name, coords := parts[0], parts[1]

		coords = strings.ReplaceAll(coords, "}{", "}"+groupDelim+"{")
		for _, group := range strings.Split(coords, groupDelim) {
			ints := integerPattern.FindAllString(group, -1)
			if len(ints) != 4 {
				log.Warn("dropping coordinate group", "phrase", name, "group", group, "integers", len(ints))
				continue
			}
			box, err := toBox(ints, extent, width, height)
			if err != nil {
				log.Warn("dropping coordinate group", "phrase", name, "group", group, "err", err)
				continue
			}

			i, ok := index[name]
			if !ok {
				i = len(entities)
				index[name] = i
				entities = append(entities, Entity{Name: name})
			}
			entities[i].Boxes = append(entities[i].Boxes, box)
		}
	}
	return entities
}

func toBox(ints []string, extent float64, width, height int) (Box, error) {
	var v [4]int
	for i := range v {
		n, err := strconv.Atoi(ints[i])
		if err != nil {
			return Box{}, err
		}
		v[i] = n
	}
	left, bottom, right, top := geometry.Normalize(v[0], v[1], v[2], v[3], extent, width, height)
	return Box{Left: left, Bottom: bottom, Right: right, Top: top}, nil
}
