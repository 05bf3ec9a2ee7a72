// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compose

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"
)

// localPageTmpl renders a deterministic page from the profile and mood
// context. It stands in for the language model when no API key is
// configured, so the pipeline stays runnable offline.
var localPageTmpl = template.Must(template.New("page").Parse(`The {{.Atmosphere}} settled over the valley as {{.Protagonist}} paused at the edge of the old road, weighing the distance already traveled against the miles still to come. Chapter {{.Chapter}} of this journey had begun like the others, quietly, but something in the air suggested it would not end that way.

{{.Protagonist}} thought of the stories told in the village about travelers who walked this road and came back changed. In a tale of {{.Genre}}, such warnings were rarely idle. The {{.Tone}} mood of the morning pressed close, and each step forward felt like a sentence being written in a book no one had opened before.

By the time the light shifted, {{.Protagonist}} had made a decision that could not be unmade, and the road ahead, patient as ever, waited to see what the next page would bring.`))

// TemplateGenerator produces placeholder prose from a local template.
type TemplateGenerator struct{}

// GeneratePage renders the local page template for the request.
func (TemplateGenerator) GeneratePage(_ context.Context, req Request) (string, error) {
	atmosphere := "evening hush"
	if len(req.Mood.AtmosphericElements) > 0 {
		atmosphere = strings.Join(req.Mood.AtmosphericElements, " and ")
	}
	tone := req.Mood.EmotionalTone
	if tone == "" {
		tone = "quiet"
	}

	data := struct {
		Protagonist string
		Genre       string
		Chapter     int
		Atmosphere  string
		Tone        string
	}{
		Protagonist: req.Profile.Protagonist,
		Genre:       req.Profile.Genre,
		Chapter:     req.Chapter,
		Atmosphere:  atmosphere,
		Tone:        tone,
	}

	var buf bytes.Buffer
	if err := localPageTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering page template: %w", err)
	}
	return buf.String(), nil
}
