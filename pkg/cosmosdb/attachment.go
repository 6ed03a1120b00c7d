package cosmosdb

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"

	"github.com/Azure/cosmosdb-client-go/pkg/api"
)

// AttachmentClient operates on a document's attachment feed.  Attachment
// requests carry the owning document's partition key.
type AttachmentClient interface {
	Create(ctx context.Context, partitionkey string, newattachment *api.Attachment, options *Options) (*api.Attachment, error)
	List(partitionkey string, options *Options) AttachmentIterator
	ListAll(ctx context.Context, partitionkey string, options *Options) (*api.Attachments, error)
	Get(ctx context.Context, partitionkey, attachmentid string, options *Options) (*api.Attachment, error)
	Replace(ctx context.Context, partitionkey string, attachment *api.Attachment, options *Options) (*api.Attachment, error)
	Delete(ctx context.Context, partitionkey string, attachment *api.Attachment, options *Options) error
}

type attachmentClient struct {
	c      *databaseClient
	dbid   string
	collid string
	docid  string
}

var _ AttachmentClient = &attachmentClient{}

// NewAttachmentClient returns a new AttachmentClient.
func NewAttachmentClient(docc DocumentClient, docid string) AttachmentClient {
	dbid, collid := docc.path()
	return &attachmentClient{c: docc.pipeline(), dbid: dbid, collid: collid, docid: docid}
}

// AttachmentIterator pages through attachment feeds.
type AttachmentIterator interface {
	Next(ctx context.Context) (*api.Attachments, error)
	Continuation() string
	HasMoreResults() bool
}

type attachmentIterator struct {
	feedIterator
}

func (i *attachmentIterator) Next(ctx context.Context) (*api.Attachments, error) {
	attachments := &api.Attachments{}
	err := i.next(ctx, attachments)
	if err != nil {
		return nil, err
	}
	return attachments, nil
}

func (c *attachmentClient) Create(ctx context.Context, partitionkey string, newattachment *api.Attachment, options *Options) (*api.Attachment, error) {
	if newattachment.ID == "" {
		newattachment.ID = api.GenerateID()
	}
	err := api.ValidateID(newattachment.ID)
	if err != nil {
		return nil, err
	}

	attachment := &api.Attachment{}
	err = c.c._create(ctx, NewAttachmentLocation(c.dbid, c.collid, c.docid, ""), newattachment, attachment, withPartitionKey(options, partitionkey))
	if err != nil {
		return nil, err
	}
	return attachment, nil
}

func (c *attachmentClient) List(partitionkey string, options *Options) AttachmentIterator {
	return &attachmentIterator{newFeedIterator(c.c, NewAttachmentLocation(c.dbid, c.collid, c.docid, ""), nil, withPartitionKey(options, partitionkey))}
}

func (c *attachmentClient) ListAll(ctx context.Context, partitionkey string, options *Options) (*api.Attachments, error) {
	all := &api.Attachments{}

	i := c.List(partitionkey, options)
	for {
		attachments, err := i.Next(ctx)
		if err == ErrNoMoreResults {
			return all, nil
		}
		if err != nil {
			return nil, err
		}

		all.Count += attachments.Count
		all.ResourceID = attachments.ResourceID
		all.Attachments = append(all.Attachments, attachments.Attachments...)
	}
}

func (c *attachmentClient) Get(ctx context.Context, partitionkey, attachmentid string, options *Options) (*api.Attachment, error) {
	err := api.ValidateID(attachmentid)
	if err != nil {
		return nil, err
	}

	attachment := &api.Attachment{}
	err = c.c._get(ctx, NewAttachmentLocation(c.dbid, c.collid, c.docid, attachmentid), nil, attachment, withPartitionKey(options, partitionkey))
	if err != nil {
		return nil, err
	}
	return attachment, nil
}

func (c *attachmentClient) Replace(ctx context.Context, partitionkey string, attachment *api.Attachment, options *Options) (*api.Attachment, error) {
	err := api.ValidateID(attachment.ID)
	if err != nil {
		return nil, err
	}

	newattachment := &api.Attachment{}
	err = c.c._replace(ctx, NewAttachmentLocation(c.dbid, c.collid, c.docid, attachment.ID), attachment, attachment, newattachment, withPartitionKey(options, partitionkey))
	if err != nil {
		return nil, err
	}
	return newattachment, nil
}

func (c *attachmentClient) Delete(ctx context.Context, partitionkey string, attachment *api.Attachment, options *Options) error {
	err := api.ValidateID(attachment.ID)
	if err != nil {
		return err
	}

	return c.c._delete(ctx, NewAttachmentLocation(c.dbid, c.collid, c.docid, attachment.ID), attachment, withPartitionKey(options, partitionkey))
}
