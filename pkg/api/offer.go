package api

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

// OfferContent carries the provisioned throughput of an offer.
type OfferContent struct {
	OfferThroughput int `json:"offerThroughput,omitempty"`
}

// Offer represents a throughput offer resource.  Offers are account-level:
// they have no ancestors and are addressed by their own id only.
type Offer struct {
	Resource

	OfferVersion    string        `json:"offerVersion,omitempty"`
	OfferType       string        `json:"offerType,omitempty"`
	Content         *OfferContent `json:"content,omitempty"`
	OfferResourceID string        `json:"offerResourceId,omitempty"`
	ResourceLink    string        `json:"resource,omitempty"`
}

// Offers represents a page of offer resources.
type Offers struct {
	Count      int      `json:"_count,omitempty"`
	ResourceID string   `json:"_rid,omitempty"`
	Offers     []*Offer `json:"Offers,omitempty"`
}

func (offers *Offers) Items() []Linkable {
	items := make([]Linkable, 0, len(offers.Offers))
	for _, offer := range offers.Offers {
		items = append(items, offer)
	}
	return items
}
