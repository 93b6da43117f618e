package backend

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/jafarshop/coffeeshop/internal/domain"
)

// ListCoffees fetches every product in the catalog
func (c *Client) ListCoffees(ctx context.Context) ([]domain.Product, error) {
	const op = "list coffees"

	req, err := c.newRequest(ctx, http.MethodGet, ListCoffeesPath, nil, "")
	if err != nil {
		return nil, err
	}

	body, err := c.send(op, req)
	if err != nil {
		return nil, err
	}

	var records []coffeeRecord
	if err := decode(op, body, &records); err != nil {
		return nil, err
	}

	products := make([]domain.Product, len(records))
	for i, r := range records {
		products[i] = r.toDomain()
	}
	return products, nil
}

// CreateCoffee submits a new product as a multipart form
func (c *Client) CreateCoffee(ctx context.Context, input domain.ProductInput) error {
	const op = "create coffee"

	body, contentType, err := encodeProductForm(input, fieldCreateImage)
	if err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost, CreateCoffeePath, body, contentType)
	if err != nil {
		return err
	}

	_, err = c.send(op, req)
	return err
}

// UpdateCoffee replaces a product's fields as a multipart form
func (c *Client) UpdateCoffee(ctx context.Context, id int64, input domain.ProductInput) error {
	const op = "update coffee"

	body, contentType, err := encodeProductForm(input, fieldUpdateImage)
	if err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPut, updateCoffeePath(id), body, contentType)
	if err != nil {
		return err
	}

	_, err = c.send(op, req)
	return err
}

// DeleteCoffee deletes a product. The backend refuses while a cart references it.
func (c *Client) DeleteCoffee(ctx context.Context, id int64) error {
	req, err := c.newRequest(ctx, http.MethodDelete, deleteCoffeePath(id), nil, "")
	if err != nil {
		return err
	}
	_, err = c.send("delete coffee", req)
	return err
}

// RemoveCoffee takes a product off the listing
func (c *Client) RemoveCoffee(ctx context.Context, id int64) error {
	req, err := c.newRequest(ctx, http.MethodDelete, removeCoffeePath(id), nil, "")
	if err != nil {
		return err
	}
	_, err = c.send("remove coffee", req)
	return err
}

func encodeProductForm(input domain.ProductInput, imageField string) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fields := [][2]string{
		{fieldName, input.Name},
		{fieldDescription, input.Description},
		{fieldPrice, input.Price.String()},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("failed to write form field %s: %w", f[0], err)
		}
	}

	if input.Image != nil {
		part, err := w.CreateFormFile(imageField, input.Image.Filename)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := part.Write(input.Image.Data); err != nil {
			return nil, "", fmt.Errorf("failed to write form file: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	return buf, w.FormDataContentType(), nil
}
