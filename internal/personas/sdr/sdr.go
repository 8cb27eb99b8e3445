// Package sdr is the day5 persona: a sales development rep that answers from
// the company FAQ and captures leads.
package sdr

import (
    "context"
    "encoding/json"
    "fmt"
    "log"
    "strings"
    "time"

    "voicedays/agent/internal/docstore"
    "voicedays/agent/internal/persona"
    "voicedays/agent/internal/tool"
)

const (
    faqDoc   = "day5_company_faq.json"
    leadsDoc = "day5_leads.json"
)

type companyData struct {
    CompanyName string     `json:"company_name"`
    Description string     `json:"description"`
    FAQ         []faqEntry `json:"faq"`
}

type faqEntry struct {
    Question string `json:"question"`
    Answer   string `json:"answer"`
}

type searchFAQInput struct {
    Query string `json:"query" jsonschema_description:"The question or topic to search for."`
}

type saveLeadInput struct {
    Name     string `json:"name" jsonschema_description:"Lead's name."`
    Company  string `json:"company" jsonschema_description:"Company name."`
    Email    string `json:"email" jsonschema_description:"Email address."`
    Role     string `json:"role" jsonschema_description:"Job role or title."`
    UseCase  string `json:"use_case" jsonschema_description:"What they want to use the product for."`
    TeamSize string `json:"team_size" jsonschema_description:"Size of their team."`
    Timeline string `json:"timeline" jsonschema_description:"When they're looking to implement (now/soon/later)."`
}

type lead struct {
    Name     string `json:"name"`
    Company  string `json:"company"`
    Email    string `json:"email"`
    Role     string `json:"role"`
    UseCase  string `json:"use_case"`
    TeamSize string `json:"team_size"`
    Timeline string `json:"timeline"`
    Date     string `json:"date"`
}

func New(docs *docstore.Store) *persona.Descriptor {
    company := companyData{
        CompanyName: "TechFlow Solutions",
        Description: "an AI-powered workflow automation platform.",
    }
    if err := docs.LoadInto(faqDoc, &company); err != nil {
        log.Printf("sdr: loading %s: %v", faqDoc, err)
    }

    instructions := fmt.Sprintf(`You are a Sales Development Representative (SDR) for %s.

Your role:
- Greet visitors warmly and professionally
- Ask what brought them here and what they're working on
- Answer questions about the company and product using the FAQ (use search_faq tool)
- Understand the visitor's needs and use case
- Collect lead information naturally during conversation:
  * Name
  * Company
  * Email
  * Role
  * Use case (what they want to use this for)
  * Team size
  * Timeline (now / soon / later)
- Keep the conversation focused and helpful
- When the user seems done (says "that's all", "thanks", "I'm done"), use the save_lead tool to save their information
- Provide a brief verbal summary before ending

Be friendly, professional, and genuinely interested in helping the visitor.`, company.CompanyName)

    tools := []tool.Definition{
        {
            Name:        "search_faq",
            Description: "Search the company FAQ for answers to questions.",
            InputSchema: tool.Schema[searchFAQInput](),
            Handler: func(ctx context.Context, inv tool.Invocation) (string, error) {
                var in searchFAQInput
                if err := json.Unmarshal(inv.Input, &in); err != nil {
                    return "", err
                }
                words := strings.Fields(strings.ToLower(in.Query))
                for _, item := range company.FAQ {
                    question := strings.ToLower(item.Question)
                    for _, w := range words {
                        if len(w) > 3 && strings.Contains(question, w) {
                            return item.Question + "\n\n" + item.Answer, nil
                        }
                    }
                }
                return fmt.Sprintf("I don't have a specific answer for that, but %s is %s Would you like to know more about our pricing, features, or how it works?",
                    company.CompanyName, company.Description), nil
            },
        },
        {
            Name:        "save_lead",
            Description: "Save a lead's information to the leads database.",
            InputSchema: tool.Schema[saveLeadInput](),
            Handler: func(ctx context.Context, inv tool.Invocation) (string, error) {
                var in saveLeadInput
                if err := json.Unmarshal(inv.Input, &in); err != nil {
                    return "", err
                }
                l := lead{
                    Name:     in.Name,
                    Company:  in.Company,
                    Email:    in.Email,
                    Role:     in.Role,
                    UseCase:  in.UseCase,
                    TeamSize: in.TeamSize,
                    Timeline: in.Timeline,
                    Date:     time.Now().Format(time.RFC3339),
                }
                if err := docs.Append(leadsDoc, l); err != nil {
                    return "I've noted your information. Thank you for your interest!", nil
                }
                log.Printf("sdr: lead saved room=%s company=%s", inv.Room, in.Company)
                return fmt.Sprintf("Great! I've saved your information. Here's a quick summary: %s from %s (%s) is interested in using our platform for %s with a team of %s, looking to implement %s. We'll be in touch soon at %s!",
                    in.Name, in.Company, in.Role, in.UseCase, in.TeamSize, in.Timeline, in.Email), nil
            },
        },
    }

    return &persona.Descriptor{
        Name:         "day5",
        Title:        "Sales Rep (SDR)",
        Instructions: instructions,
        Voice:        persona.Voice{ID: "en-US-matthew", Style: "Conversation"},
        Tools:        tool.NewDispatcher("day5", tools),
    }
}
