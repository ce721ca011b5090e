package intelligence

import (
	"fmt"

	"github.com/kirillkom/doclens/internal/core/domain"
)

// Insights phrases analysis findings as ordered sentences. It is pure templating.
func Insights(d domain.Domain, entities []domain.ExtractedEntity, cases []domain.SimilarCase) []string {
	var out []string

	switch d {
	case domain.DomainLegal:
		out = append(out, fmt.Sprintf("Legal analysis identified %d specialized legal terms requiring careful interpretation.",
			countEntities(entities, domain.EntityLegalTerm)))
		if len(cases) > 0 {
			out = append(out, fmt.Sprintf("Found %d relevant legal precedents with average confidence of %.1f%%.",
				len(cases), AverageConfidence(cases)))
		}
		out = append(out, "Constitutional rights and due process considerations should be reviewed by qualified legal counsel.")
	case domain.DomainMedical:
		out = append(out, fmt.Sprintf("Medical analysis detected %d clinical terms requiring professional medical interpretation.",
			countEntities(entities, domain.EntityMedicalTerm)))
		if len(cases) > 0 {
			out = append(out, fmt.Sprintf("Identified %d similar medical cases that may provide relevant clinical context.", len(cases)))
		}
		out = append(out, "All medical terminology and recommendations should be validated by licensed healthcare professionals.")
	case domain.DomainTechnical:
		out = append(out, fmt.Sprintf("Technical analysis found %d specialized technical terms and concepts.",
			countEntities(entities, domain.EntityTechnicalTerm)))
		if len(cases) > 0 {
			out = append(out, fmt.Sprintf("Located %d comparable technical implementations and best practices.", len(cases)))
		}
		out = append(out, "Technical specifications should be reviewed by qualified engineers before implementation.")
	}

	if n := countEntities(entities, domain.EntityPerson); n > 0 {
		out = append(out, fmt.Sprintf("Document references %d individuals who may be key stakeholders.", n))
	}
	if n := countEntities(entities, domain.EntityOrg); n > 0 {
		out = append(out, fmt.Sprintf("%d organizations mentioned may require additional research or contact.", n))
	}
	if len(cases) == 0 {
		out = append(out, "No highly similar cases found in current knowledge base. Consider expanding search criteria or consulting domain experts.")
	}
	return out
}

// AverageConfidence is the mean case confidence, or 0 for no cases.
func AverageConfidence(cases []domain.SimilarCase) float64 {
	if len(cases) == 0 {
		return 0
	}
	sum := 0
	for _, c := range cases {
		sum += c.Confidence
	}
	return float64(sum) / float64(len(cases))
}

func countEntities(entities []domain.ExtractedEntity, kind domain.EntityType) int {
	n := 0
	for _, e := range entities {
		if e.Type == kind {
			n++
		}
	}
	return n
}
