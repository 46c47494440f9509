package cozy

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/cozy/keys-autofill/internal/infrastructure/monitoring"
	"github.com/cozy/keys-autofill/internal/types"
)

const (
	contactsPath = "/data/io.cozy.contacts/"
	filesPath    = "/files/"
)

// Metric statuses of an attribute lookup.
const (
	StatusOK       = "ok"
	StatusNotFound = "not_found"
	StatusError    = "error"
)

// document is the decoded attribute bag of a contact or paper.
type document map[string]any

// Attribute returns the named attribute of the contact or paper document
// behind cipher. Contacts are read from io.cozy.contacts; papers are files
// whose metadata holds the attributes.
func (c *Client) Attribute(ctx context.Context, cipher *types.Cipher, name string) (string, error) {
	timer := monitoring.NewTimer(c.metrics, name)

	value, err := c.attribute(ctx, cipher, name)
	switch {
	case err == nil:
		timer.Stop(StatusOK)
	case errors.Is(err, ErrAttributeNotFound), errors.Is(err, ErrNoDocument):
		timer.Stop(StatusNotFound)
	default:
		timer.Stop(StatusError)
		c.log.Warn("Failed to fetch cozy attribute",
			zap.String("cipher", cipher.ID),
			zap.String("attribute", name),
			zap.Error(err))
	}
	return value, err
}

func (c *Client) attribute(ctx context.Context, cipher *types.Cipher, name string) (string, error) {
	switch {
	case cipher.Contact() != nil:
		id := cipher.Contact().DocumentID
		if id == "" {
			return "", ErrNoDocument
		}
		doc, err := c.fetch(ctx, contactsPath+url.PathEscape(id), decodeContact)
		if err != nil {
			return "", err
		}
		return contactAttribute(doc, name)
	case cipher.Paper() != nil:
		id := cipher.Paper().DocumentID
		if id == "" {
			return "", ErrNoDocument
		}
		doc, err := c.fetch(ctx, filesPath+url.PathEscape(id), decodePaper)
		if err != nil {
			return "", err
		}
		return lookup(doc, name)
	default:
		return "", fmt.Errorf("%s: %w", cipher.Type(), ErrNoDocument)
	}
}

func decodeContact(resp *resty.Response) (document, error) {
	var doc document
	if err := sonic.Unmarshal(resp.Body(), &doc); err != nil {
		return nil, fmt.Errorf("decode contact: %w", err)
	}
	return doc, nil
}

// decodePaper extracts the metadata of a JSON:API file document.
func decodePaper(resp *resty.Response) (document, error) {
	var file struct {
		Data struct {
			Attributes struct {
				Metadata document `json:"metadata"`
			} `json:"attributes"`
		} `json:"data"`
	}
	if err := sonic.Unmarshal(resp.Body(), &file); err != nil {
		return nil, fmt.Errorf("decode paper: %w", err)
	}
	if file.Data.Attributes.Metadata == nil {
		return document{}, nil
	}
	return file.Data.Attributes.Metadata, nil
}

// contactAttribute resolves the list attributes of a contact to their
// primary entry.
func contactAttribute(doc document, name string) (string, error) {
	switch name {
	case "email":
		return primary(doc, "email", "address")
	case "phone":
		return primary(doc, "phone", "number")
	default:
		return lookup(doc, name)
	}
}

func primary(doc document, list, key string) (string, error) {
	items, _ := doc[list].([]any)
	var first string
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		value, _ := entry[key].(string)
		if value == "" {
			continue
		}
		if isPrimary, _ := entry["primary"].(bool); isPrimary {
			return value, nil
		}
		if first == "" {
			first = value
		}
	}
	if first == "" {
		return "", fmt.Errorf("%s: %w", list, ErrAttributeNotFound)
	}
	return first, nil
}

func lookup(doc document, name string) (string, error) {
	switch v := doc[name].(type) {
	case string:
		if v != "" {
			return v, nil
		}
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	}
	return "", fmt.Errorf("%s: %w", name, ErrAttributeNotFound)
}
