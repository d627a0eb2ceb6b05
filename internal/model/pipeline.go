package model

import (
	"fmt"
	"time"
)

// Lifecycle categories a pipeline item can belong to.
const (
	CategoryCalls               = "Calls"
	CategoryPipeline            = "Pipeline"
	CategoryListsMediaQA        = "Lists_Media_QA"
	CategoryPartnerContacts     = "Partner_Contacts"
	CategoryDeclinedRescheduled = "Declined_Rescheduled"
)

// Funnel stages in progression order. StageDeclined is a terminal branch and
// never participates in the stage-to-stage conversion chain.
const (
	StageCallProposed     = "Call Proposed"
	StageCallBooked       = "Call Booked"
	StageProposalSent     = "Proposal Sent"
	StageAgreementReached = "Agreement Reached"
	StageListOut          = "List Out"
	StageSold             = "Sold"
	StageDeclined         = "Declined/Q&A"
)

// ProgressiveStages is the ordered main funnel, excluding the declined branch.
var ProgressiveStages = []string{
	StageCallProposed,
	StageCallBooked,
	StageProposalSent,
	StageAgreementReached,
	StageListOut,
	StageSold,
}

// Statuses referenced directly by the analytics core.
const (
	StatusCallBooked = "Call Booked"
	StatusSold       = "Sold"
)

// StatusInfo places a status in the lifecycle vocabulary: its category, the
// funnel stage it maps to (empty for statuses outside the funnel, e.g. partner
// contacts), and the default win probability assigned on transition.
type StatusInfo struct {
	Category    string
	Stage       string
	Probability int
}

// StatusTable is the single authoritative mapping for the status vocabulary.
// Branching on statuses anywhere else in the codebase is a bug.
var StatusTable = map[string]StatusInfo{
	"Call Proposed":        {CategoryCalls, StageCallProposed, 10},
	"Call Booked":          {CategoryCalls, StageCallBooked, 20},
	"Call Conducted":       {CategoryCalls, StageProposalSent, 30},
	"Proposal - Profile":   {CategoryPipeline, StageProposalSent, 40},
	"Proposal - Media":     {CategoryPipeline, StageProposalSent, 40},
	"Agreement - Profile":  {CategoryPipeline, StageAgreementReached, 60},
	"Agreement - Media":    {CategoryPipeline, StageAgreementReached, 60},
	"Partner List Pending": {CategoryListsMediaQA, StageAgreementReached, 65},
	"List Out":             {CategoryListsMediaQA, StageListOut, 70},
	"Media Sales":          {CategoryListsMediaQA, StageListOut, 75},
	"Sold":                 {CategoryPipeline, StageSold, 100},
	"Q&A":                  {CategoryListsMediaQA, StageDeclined, 0},
	"Declined":             {CategoryDeclinedRescheduled, StageDeclined, 0},
	"Rescheduled":          {CategoryDeclinedRescheduled, StageDeclined, 0},
	"No Show":              {CategoryDeclinedRescheduled, StageDeclined, 0},
	"Contacted":            {CategoryPartnerContacts, "", 0},
	"Interested":           {CategoryPartnerContacts, "", 0},
	"Passed":               {CategoryPartnerContacts, "", 0},
}

// StageFor returns the funnel stage for a status, or "" when the status is
// unknown or sits outside the funnel.
func StageFor(status string) string {
	return StatusTable[status].Stage
}

// PipelineItem is a sales opportunity progressing through the pipeline.
// A sublist item is a container owning partner-contact children via ParentID.
type PipelineItem struct {
	ID                  string
	BDR                 string
	Category            string
	Status              string
	Value               float64
	Probability         int
	AddedDate           time.Time
	LastUpdated         time.Time
	CallDate            *time.Time
	ExpectedCloseDate   *time.Time
	AgreementDate       *time.Time
	PartnerListSentDate *time.Time
	FirstSaleDate       *time.Time
	Notes               string
	ParentID            string
	IsSublist           bool
	PartnerListSize     int
}

// NodeKind is the structural role of an item in the two-level list tree.
type NodeKind int

const (
	KindStandalone NodeKind = iota
	KindContainer
	KindContact
)

// Kind derives the structural role from the sublist/parent fields.
func (p PipelineItem) Kind() NodeKind {
	switch {
	case p.IsSublist:
		return KindContainer
	case p.ParentID != "":
		return KindContact
	default:
		return KindStandalone
	}
}

// PipelineNode is a list container with its partner-contact children.
type PipelineNode struct {
	Item     PipelineItem
	Children []PipelineItem
}

// BuildTree groups partner contacts under their list containers. Children may
// only hang off container items; a contact referencing a missing or
// non-container parent violates the data invariant and is reported.
func BuildTree(items []PipelineItem) ([]PipelineNode, error) {
	byID := make(map[string]int)
	var nodes []PipelineNode
	for _, item := range items {
		if item.Kind() == KindContainer {
			byID[item.ID] = len(nodes)
			nodes = append(nodes, PipelineNode{Item: item})
		}
	}

	for _, item := range items {
		if item.Kind() != KindContact {
			continue
		}
		idx, ok := byID[item.ParentID]
		if !ok {
			return nil, fmt.Errorf("pipeline item %s: parent %s is not a list container", item.ID, item.ParentID)
		}
		nodes[idx].Children = append(nodes[idx].Children, item)
	}

	return nodes, nil
}
