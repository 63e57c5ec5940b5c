package document

import (
	"text/template"
)

const noAnalysisPlaceholder = "No advisory analysis available."

const prdTemplate = `# Product Requirements Document (PRD)

**Product:** {{.Request.ProductIdea}}
**Target Audience:** {{.Request.TargetAudience}}
**Timeline:** {{.Request.Timeline}}
**Budget Range:** {{.Request.BudgetRange}}
**Date:** {{.Date}}
**Advisory Panel:** {{.AdvisorList}} ({{.Count}} advisor{{plural .Count}})

## Executive Summary
This PRD synthesizes insights from {{.Count}} legendary business perspective{{plural .Count}} to provide comprehensive product guidance.

## Advisory Panel Analysis

{{.Sections}}

## Synthesis & Recommendations

**Core Value Proposition:** Focus on solving a real user problem with elegant simplicity while building defensible competitive advantages.

**Technical Strategy:** Build scalable foundation with modern architecture, emphasizing user experience and rapid iteration capabilities.

**Business Model:** Develop sustainable revenue streams based on strong unit economics and customer retention.

**Market Approach:** Target early adopters, validate product-market fit, then scale with disciplined growth strategy.

## Product Specifications

**Target Users:** {{.Request.TargetAudience}}
**Development Timeline:** {{.Request.Timeline}}
**Budget Allocation:** {{.Request.BudgetRange}}

## Next Steps
1. Validate core assumptions with target users
2. Build MVP focusing on primary value proposition
3. Iterate based on user feedback and data
4. Scale with proven product-market fit

---
*Generated by Gaia Multi-Agent System with {{.Count}} AI advisor{{plural .Count}}*`

const devPromptTemplate = `# Development Prompt for {{.Request.ProductIdea}}

**Target Audience:** {{.Request.TargetAudience}}
**Timeline:** {{.Request.Timeline}}
**Budget:** {{.Request.BudgetRange}}

Based on analysis from {{.AdvisorList}}, build a production-ready web application with these priorities:

## Core Requirements
- **User-Centric Design:** Tailored for {{.Request.TargetAudience}}
- **Timeline Considerations:** Deliverable within {{.Request.Timeline}}
- **Budget Optimization:** Efficient development within {{.Request.BudgetRange}}

## Technical Implementation
Use React/Next.js + TypeScript + Tailwind CSS with:
- User authentication (Auth0/Supabase)
- Responsive design (mobile-first)
- Real-time features where appropriate
- Analytics and user tracking
- SEO optimization
- Accessibility compliance

## Key Features
1. Compelling landing page with clear value prop for {{.Request.TargetAudience}}
2. Streamlined user onboarding
3. Core functionality solving main user problem
4. Clean dashboard with actionable insights
5. Account management and settings
6. Mobile app-like experience

## Success Metrics
- User engagement and retention
- Conversion rates and revenue per user
- Performance metrics (Core Web Vitals)
- Customer satisfaction scores

Build something {{.Request.TargetAudience}} will love, that scales efficiently, and creates lasting value.

*Optimized for v0.dev, bolt.new, lovable.dev*
*Advisory insights from: {{.AdvisorList}}*`

const enrichmentTemplate = `{{.DevPrompt}}

## AI Advisory Insights for Implementation

{{range .Insights}}**{{.Emoji}} {{.Label}} ({{.DisplayName}}):**
{{.Excerpt}}...

{{end}}
## Implementation Priority
1. Start with core functionality that delivers immediate value
2. Focus on user experience and interface design
3. Build scalable architecture from day one
4. Implement analytics to track key metrics
5. Plan for iterative improvements based on user feedback

**Copy this entire prompt and paste it into v0.dev, bolt.new, or lovable.dev for best results.**`

var funcMap = template.FuncMap{
	"plural": func(n int) string {
		if n == 1 {
			return ""
		}
		return "s"
	},
}

var (
	prdTmpl        = template.Must(template.New("prd").Funcs(funcMap).Parse(prdTemplate))
	devPromptTmpl  = template.Must(template.New("dev-prompt").Funcs(funcMap).Parse(devPromptTemplate))
	enrichmentTmpl = template.Must(template.New("enrichment").Funcs(funcMap).Parse(enrichmentTemplate))
)
