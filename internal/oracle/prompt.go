package oracle

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a careful document classifier for a communications/PR knowledge base.
Return STRICT JSON with fields: doc_type, doc_subtype, confidence, evidence.
- doc_type MUST be one of the ALLOWED_LABELS provided, unless none fits.
- If none fits, still return your best guess in a field named 'proposed_new_label',
  and set doc_type to the closest safe choice from ALLOWED_LABELS.
- doc_subtype is a short free-text description (e.g., "fact sheet", "proclamation language").
- confidence is a number 0..1 (be honest; do not always return 1).
- evidence is a list (2-5) of short phrases you saw that justify your choice.
- (Optional) If you were uncertain, add 'uncertainty_reason'.
Use CONTENT, FILENAME, SOURCE_PATH (folder context), EXTRACT_TYPE, and LABEL_HINTS.
If uncertain, choose the safest close label from the allowed list and include 'proposed_new_label'.`

// composeUserContent renders the classification request the way the model
// expects it: allowed labels, hints, file context, then the content sample.
func composeUserContent(req Request) string {
	return strings.Join([]string{
		"ALLOWED_LABELS = [" + strings.Join(req.Labels, ", ") + "]",
		"LABEL_HINTS =",
		req.LabelHints,
		"",
		fmt.Sprintf("FILENAME = %s", req.Filename),
		fmt.Sprintf("SOURCE_PATH_LAST_PARTS = %s", req.PathContext),
		fmt.Sprintf("EXTRACT_TYPE = %s", req.Kind),
		"CONTENT_SAMPLE = <<BEGIN>>" + req.Sample + "<<END>>",
		"",
		"Respond with JSON ONLY:",
		`{"doc_type": "...", "doc_subtype": "...", "confidence": 0.0, "evidence": ["...","..."]}`,
	}, "\n")
}
