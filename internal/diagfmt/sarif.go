package diagfmt

import (
	"encoding/json"
	"io"
	"sort"

	"elide/internal/diag"
	"elide/internal/source"
)

// SARIF 2.1.0 document model, reduced to the fields we emit.

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules,omitempty"`
}

type sarifRule struct {
	ID               string        `json:"id"`
	ShortDescription *sarifMessage `json:"shortDescription,omitempty"`
}

type sarifInvocation struct {
	CommandLine         string `json:"commandLine,omitempty"`
	ExecutionSuccessful bool   `json:"executionSuccessful"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
	Fixes     []sarifFix      `json:"fixes,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion           `json:"region"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn"`
	EndLine     uint32 `json:"endLine"`
	EndColumn   uint32 `json:"endColumn"`
}

type sarifFix struct {
	Description     sarifMessage          `json:"description"`
	ArtifactChanges []sarifArtifactChange `json:"artifactChanges"`
}

type sarifArtifactChange struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Replacements     []sarifReplacement    `json:"replacements"`
}

type sarifReplacement struct {
	DeletedRegion   sarifRegion   `json:"deletedRegion"`
	InsertedContent *sarifMessage `json:"insertedContent,omitempty"`
}

func sarifLevel(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "note"
	}
}

func sarifRegionFor(fs *source.FileSet, span source.Span) sarifRegion {
	startPos, endPos := fs.Resolve(span)
	return sarifRegion{
		StartLine:   startPos.Line,
		StartColumn: startPos.Col,
		EndLine:     endPos.Line,
		EndColumn:   endPos.Col,
	}
}

// Sarif serializes diagnostics as a SARIF 2.1.0 log with one run. Rules are
// collected from the codes that actually occur; fix edits become replacement
// regions.
func Sarif(w io.Writer, bag *diag.Bag, fs *source.FileSet, meta SarifRunMeta) error {
	items := bag.Items()

	ruleSet := make(map[string]diag.Code, 8)
	results := make([]sarifResult, 0, len(items))
	ctx := diag.FixBuildContext{FileSet: fs}

	for _, d := range items {
		ruleSet[d.Code.ID()] = d.Code

		result := sarifResult{
			RuleID:  d.Code.ID(),
			Level:   sarifLevel(d.Severity),
			Message: sarifMessage{Text: d.Message},
			Locations: []sarifLocation{{
				PhysicalLocation: sarifPhysicalLocation{
					ArtifactLocation: sarifArtifactLocation{URI: formatPath(fs, d.Primary.File, PathModeRelative)},
					Region:           sarifRegionFor(fs, d.Primary),
				},
			}},
		}

		for _, f := range d.Fixes {
			resolved, err := f.Resolve(ctx)
			if err != nil || len(resolved.Edits) == 0 {
				continue
			}
			changes := make([]sarifArtifactChange, 0, len(resolved.Edits))
			for _, edit := range resolved.Edits {
				changes = append(changes, sarifArtifactChange{
					ArtifactLocation: sarifArtifactLocation{URI: formatPath(fs, edit.Span.File, PathModeRelative)},
					Replacements: []sarifReplacement{{
						DeletedRegion:   sarifRegionFor(fs, edit.Span),
						InsertedContent: &sarifMessage{Text: edit.NewText},
					}},
				})
			}
			result.Fixes = append(result.Fixes, sarifFix{
				Description:     sarifMessage{Text: resolved.Title},
				ArtifactChanges: changes,
			})
		}

		results = append(results, result)
	}

	ruleIDs := make([]string, 0, len(ruleSet))
	for id := range ruleSet {
		ruleIDs = append(ruleIDs, id)
	}
	sort.Strings(ruleIDs)
	rules := make([]sarifRule, 0, len(ruleIDs))
	for _, id := range ruleIDs {
		rules = append(rules, sarifRule{
			ID:               id,
			ShortDescription: &sarifMessage{Text: ruleSet[id].Title()},
		})
	}

	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{
			Name:    meta.ToolName,
			Version: meta.ToolVersion,
			Rules:   rules,
		}},
		Results: results,
	}
	if len(meta.InvocationArgs) > 0 {
		commandLine := ""
		for i, arg := range meta.InvocationArgs {
			if i > 0 {
				commandLine += " "
			}
			commandLine += arg
		}
		run.Invocations = []sarifInvocation{{
			CommandLine:         commandLine,
			ExecutionSuccessful: !bag.HasErrors(),
		}}
	}

	doc := sarifLog{
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Version: "2.1.0",
		Runs:    []sarifRun{run},
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}
