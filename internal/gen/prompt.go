package gen

import (
	"fmt"
	"strings"

	"answerforge/internal/qbank"
)

// maxReferenceChars bounds how much reference material is folded into a
// prompt, independent of the chunker's own bounds.
const maxReferenceChars = 1500

// PromptOptions carries the per-run context folded into every prompt.
type PromptOptions struct {
	Subject      string
	Mode         string
	CustomPrompt string
	Reference    string
}

const baseInstruction = `You are an expert academic assistant specializing in %s.
Generate a comprehensive answer for the following college-level question worth 8 marks.

The answer should be:
- Well-structured with clear headings and subheadings
- Include key terms in **bold** and important concepts in *italics*
- Use bullet points and numbered lists where appropriate
- Maintain academic rigor and accuracy
- Be approximately 400-600 words for an 8-mark question`

const understandModeInstruction = `ANSWER GENERATION MODE: UNDERSTAND MODE
- Provide detailed explanations with analogies and real-world examples
- Use simpler language where appropriate for foundational understanding
- Include step-by-step breakdowns of complex concepts
- Add background context and theoretical foundations
- Focus on building comprehensive understanding`

const examModeInstruction = `ANSWER GENERATION MODE: EXAM MODE
- Provide concise, highly focused answers with direct key points
- Use formal academic language appropriate for examinations
- Minimize verbose examples or extensive background explanations
- Structure answers for maximum marks in minimum words
- Format for quick review and memorization`

// subjectGuidelines maps subjects to their prompt guideline sections.
var subjectGuidelines = map[string]string{
	"Mathematics": `SUBJECT-SPECIFIC GUIDELINES FOR MATHEMATICS:
- Include step-by-step mathematical derivations and show all calculation steps
- Use proper mathematical notation and symbols
- Provide alternative solution methods when applicable
- Verify answers with examples or proofs`,
	"Physics": `SUBJECT-SPECIFIC GUIDELINES FOR PHYSICS:
- Include relevant physical laws and principles
- Show mathematical derivations and unit analysis
- Explain the physical intuition behind concepts
- Connect theory to experimental observations`,
	"Computer Science": `SUBJECT-SPECIFIC GUIDELINES FOR COMPUTER SCIENCE:
- Include code examples and algorithms where relevant
- Explain time and space complexity
- Provide practical implementation details
- Use proper technical terminology`,
	"History": `SUBJECT-SPECIFIC GUIDELINES FOR HISTORY:
- Provide chronological context with specific dates, names, and locations
- Explain cause-and-effect relationships
- Consider multiple perspectives and interpretations
- Connect events to broader historical patterns`,
	"Literature": `SUBJECT-SPECIFIC GUIDELINES FOR LITERATURE:
- Include textual evidence and quotations
- Analyze literary devices and techniques
- Discuss themes, characters, and symbolism
- Connect to broader literary movements`,
	"Chemistry": `SUBJECT-SPECIFIC GUIDELINES FOR CHEMISTRY:
- Include chemical equations and reactions
- Explain molecular structures and bonding
- Provide step-by-step reaction mechanisms
- Use proper chemical nomenclature`,
	"Biology": `SUBJECT-SPECIFIC GUIDELINES FOR BIOLOGY:
- Include biological processes and mechanisms
- Explain structure-function relationships
- Provide examples from different organisms
- Connect molecular to organismal levels`,
	"Economics": `SUBJECT-SPECIFIC GUIDELINES FOR ECONOMICS:
- Include economic models and market mechanisms
- Provide real-world economic examples
- Discuss policy implications
- Include quantitative analysis where relevant`,
	"Psychology": `SUBJECT-SPECIFIC GUIDELINES FOR PSYCHOLOGY:
- Include psychological theories and research
- Provide experimental evidence and studies
- Discuss practical applications
- Consider individual and cultural differences`,
	"Engineering": `SUBJECT-SPECIFIC GUIDELINES FOR ENGINEERING:
- Include technical specifications and calculations
- Explain design principles and constraints
- Discuss safety and efficiency considerations
- Connect theory to real-world applications`,
}

const generalGuidelines = `GENERAL ACADEMIC GUIDELINES:
- Maintain academic rigor and a scholarly approach
- Include relevant theories and concepts
- Provide evidence-based explanations
- Use appropriate academic terminology`

// BuildPrompt constructs the full prompt for a single question.
func BuildPrompt(question string, opts PromptOptions) string {
	var sb strings.Builder
	writeCommonSections(&sb, opts)

	sb.WriteString("QUESTION TO ANSWER:\n")
	sb.WriteString(question)
	sb.WriteString("\n\nPlease provide a comprehensive, well-formatted answer following all the above guidelines.\n")
	return sb.String()
}

// BuildBatchPrompt constructs one prompt covering several questions. The
// model is instructed to open each answer with an in-band "ANSWER <n>:"
// marker so the response can be split back per question.
func BuildBatchPrompt(questions []qbank.Question, opts PromptOptions) string {
	var sb strings.Builder
	writeCommonSections(&sb, opts)

	sb.WriteString("QUESTIONS TO ANSWER:\n")
	for _, q := range questions {
		fmt.Fprintf(&sb, "%d. %s\n", q.Ordinal, q.Text)
	}
	sb.WriteString("\nAnswer every question above. Begin each answer on its own line with exactly\n")
	sb.WriteString("\"ANSWER <number>:\" using the question's number, then the full answer.\n")
	sb.WriteString("Do not skip any question.\n")
	return sb.String()
}

func writeCommonSections(sb *strings.Builder, opts PromptOptions) {
	fmt.Fprintf(sb, baseInstruction, opts.Subject)
	sb.WriteString("\n\n")

	if opts.Mode == qbank.ModeUnderstand {
		sb.WriteString(understandModeInstruction)
	} else {
		sb.WriteString(examModeInstruction)
	}
	sb.WriteString("\n\n")

	if g, ok := subjectGuidelines[opts.Subject]; ok {
		sb.WriteString(g)
	} else {
		sb.WriteString(generalGuidelines)
	}
	sb.WriteString("\n\n")

	if ref := strings.TrimSpace(opts.Reference); ref != "" {
		if len(ref) > maxReferenceChars {
			ref = ref[:maxReferenceChars] + "..."
		}
		sb.WriteString("REFERENCE MATERIAL:\nUse the following college notes as additional context when relevant:\n")
		sb.WriteString(ref)
		sb.WriteString("\n\n")
	}

	if custom := strings.TrimSpace(opts.CustomPrompt); custom != "" {
		sb.WriteString("ADDITIONAL INSTRUCTIONS:\n")
		sb.WriteString(custom)
		sb.WriteString("\n\n")
	}
}
