package api

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

// Attachment represents an attachment resource: either raw media managed by
// the service or a reference to external media.
type Attachment struct {
	Resource

	ContentType string `json:"contentType,omitempty"`
	MediaLink   string `json:"media,omitempty"`
}

// Attachments represents a page of attachment resources.
type Attachments struct {
	Count       int           `json:"_count,omitempty"`
	ResourceID  string        `json:"_rid,omitempty"`
	Attachments []*Attachment `json:"Attachments,omitempty"`
}

func (atts *Attachments) Items() []Linkable {
	items := make([]Linkable, 0, len(atts.Attachments))
	for _, att := range atts.Attachments {
		items = append(items, att)
	}
	return items
}
