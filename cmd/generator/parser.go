package main

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

var propertiesPattern = regexp.MustCompile(`(\w+)=(?:"([^"]*)"|([\w.]+))`)

var knownComponentProperties = []string{"id", "implements"}

type (
	// TypeAnnotation is the parsed doc comment of an @component function or an @interface type.
	TypeAnnotation struct {
		logger      *zerolog.Logger
		description string
		properties  map[string]string
	}

	// InjectAnnotation is the parsed `// @inject ...` comment of a parameter.
	InjectAnnotation struct {
		logger     *zerolog.Logger
		properties map[string]string
	}
)

func (a TypeAnnotation) ID() (id string, found bool) {
	id, found = a.properties["id"]
	return id, found && id != ""
}

// Implements lists the comma separated identifiers of the implements property.
func (a TypeAnnotation) Implements() []string {
	raw, found := a.properties["implements"]
	if !found {
		return nil
	}
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func (a TypeAnnotation) UnknownProperties() []string {
	var unknown []string
	for key := range a.properties {
		if !slices.Contains(knownComponentProperties, key) {
			unknown = append(unknown, key)
		}
	}
	slices.Sort(unknown)
	return unknown
}

func (a InjectAnnotation) String() string {
	return fmt.Sprintf("InjectAnnotation(%v)", a.properties)
}

func (a InjectAnnotation) Optional() bool {
	raw, found := a.properties["optional"]
	if !found {
		return false
	}
	optional, err := strconv.ParseBool(raw)
	if err != nil {
		a.logger.Warn().Err(err).Msgf("Error parsing optional property: %s, not a correct bool", raw)
		return false
	}
	return optional
}

func parseTypeAnnotation(logger *zerolog.Logger, docText string, tag string) TypeAnnotation {
	var (
		descriptionLines []string
		annotationLine   string
	)

	// separate the annotation line from the description
	for _, line := range strings.Split(docText, "\n") {
		line = strings.TrimSpace(line)

		if strings.HasPrefix(line, tag) {
			annotationLine = line
		} else if line != "" && !strings.HasPrefix(line, "@") {
			descriptionLines = append(descriptionLines, line)
		}
	}

	annotation := TypeAnnotation{
		logger:      logger,
		description: strings.Join(descriptionLines, "\n"),
		properties:  parseProperties(annotationLine, tag),
	}
	if unknown := annotation.UnknownProperties(); len(unknown) > 0 {
		logger.Warn().Strs("properties", unknown).Msg("Unknown annotation properties, ignoring them")
	}
	return annotation
}

func hasAnnotation(docText string, tag string) bool {
	for _, line := range strings.Split(docText, "\n") {
		if line = strings.TrimSpace(line); line == tag || strings.HasPrefix(line, tag+" ") {
			return true
		}
	}
	return false
}

func parseProperties(line string, tag string) map[string]string {
	properties := make(map[string]string)

	content := strings.TrimSpace(strings.TrimPrefix(line, tag))
	if content == "" {
		return properties
	}

	for _, match := range propertiesPattern.FindAllStringSubmatch(content, -1) {
		// match[2] is the quoted value, match[3] the unquoted one
		value := match[2]
		if value == "" {
			value = match[3]
		}
		properties[match[1]] = value
	}

	return properties
}

func parseInjectAnnotation(logger *zerolog.Logger, comment string) InjectAnnotation {
	content := strings.TrimSpace(strings.TrimPrefix(comment, "//"))
	if !strings.HasPrefix(content, injectAnnotationTag) {
		return InjectAnnotation{logger: logger, properties: make(map[string]string)}
	}

	return InjectAnnotation{
		logger:     logger,
		properties: parseProperties(content, injectAnnotationTag),
	}
}
