package fetch

import "context"

// CatalogPath is where a downloaded catalog is cached inside the raw store.
const CatalogPath = "catalog/athletes.csv"

// Catalog downloads the athlete catalog from url into CatalogPath.
func (c *Client) Catalog(ctx context.Context, url string, force bool) ([]byte, error) {
	return c.FetchRaw(ctx, url, CatalogPath, force)
}
