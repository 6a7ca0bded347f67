package lacityclerk

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"laclerk-backend/lib/restyutil"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

const DefaultBaseUrl = "https://cityclerk.lacity.org/lacityclerkconnect/index.cfm"

// Client fetches council file pages. It is deliberately thin; all the
// interesting work happens in Assemble over the parsed page.
type Client struct {
	Http    *resty.Client
	baseUrl string
}

type ClientOptions struct {
	// defaults to DefaultBaseUrl
	BaseUrl string
	// optional request dump sink for debugging
	InstrumentOutput restyutil.InstrumentOutput
}

func NewClient(opts ClientOptions) *Client {
	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}

	client := resty.New()
	client.SetTimeout(time.Second * 30)
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	restyutil.InstrumentClient(client, tracer, opts.InstrumentOutput)

	return &Client{
		Http:    client,
		baseUrl: baseUrl,
	}
}

// RecordURL builds the view-record URL for a council file number. The
// file number is the trailing query segment, which is also where
// FileIdFromURL recovers it from.
func RecordURL(baseUrl, fileId string) string {
	return fmt.Sprintf("%s?fa=ccfi.viewrecord&cfnumber=%s", baseUrl, fileId)
}

// FetchRecord fetches and extracts one council file record.
func (c *Client) FetchRecord(ctx context.Context, fileId string) (Record, error) {
	link := RecordURL(c.baseUrl, fileId)

	res, err := c.Http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		return Record{}, err
	}
	if res.StatusCode() != 200 {
		return Record{}, fmt.Errorf("fetch %s: status %d", link, res.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return Record{}, err
	}

	return Assemble(ctx, doc, fileId, link)
}
