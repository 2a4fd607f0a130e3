package macro

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/Dan9191/finance-dashboard/internal/config"
	"github.com/Dan9191/finance-dashboard/internal/models"
	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"
)

// Client handles integration with the macroeconomic data feed
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a new macro feed client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url: cfg.MacroURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// DefaultIndicators returns the static fallback snapshot used when the feed
// is unreachable. The prediction engine never sees a partially-empty snapshot.
func DefaultIndicators() models.EconomicIndicators {
	return models.EconomicIndicators{
		InflationRate:      3.2,
		GDPGrowth:          2.1,
		ConsumerPriceIndex: 310.3,
		UnemploymentRate:   3.9,
		OilPrices:          78.5,
		DollarStrength:     104.2,
		LastUpdated:        time.Now(),
	}
}

// sendRequest fetches the raw indicator XML from the feed
func (c *Client) sendRequest() ([]byte, error) {
	req, err := http.NewRequest("GET", c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Accept", "application/xml")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}

	c.log.Debugf("Macro feed XML response: %s", string(body))

	return body, nil
}

// parseXMLResponse parses the feed XML into an indicator snapshot. Fields
// missing from the feed keep the default value so the snapshot stays complete.
func (c *Client) parseXMLResponse(rawBody []byte) (models.EconomicIndicators, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return models.EconomicIndicators{}, fmt.Errorf("failed to parse XML: %v", err)
	}

	elements := doc.FindElements("//IndicatorFeed/Indicator")
	if len(elements) == 0 {
		return models.EconomicIndicators{}, fmt.Errorf("no indicator data found in XML")
	}

	snapshot := DefaultIndicators()
	for _, el := range elements {
		name := el.SelectAttrValue("name", "")
		value, err := strconv.ParseFloat(el.SelectAttrValue("value", ""), 64)
		if err != nil {
			c.log.Warnf("Skipping indicator %q with unparseable value: %v", name, err)
			continue
		}
		switch name {
		case "inflation_rate":
			snapshot.InflationRate = value
		case "gdp_growth":
			snapshot.GDPGrowth = value
		case "consumer_price_index":
			snapshot.ConsumerPriceIndex = value
		case "unemployment_rate":
			snapshot.UnemploymentRate = value
		case "oil_prices":
			snapshot.OilPrices = value
		case "dollar_strength":
			snapshot.DollarStrength = value
		}
	}
	snapshot.LastUpdated = time.Now()

	return snapshot, nil
}

// Fetch retrieves the latest economic indicator snapshot from the feed
func (c *Client) Fetch() (models.EconomicIndicators, error) {
	body, err := c.sendRequest()
	if err != nil {
		return models.EconomicIndicators{}, err
	}

	snapshot, err := c.parseXMLResponse(body)
	if err != nil {
		return models.EconomicIndicators{}, err
	}

	c.log.Infof("Retrieved macro indicators: inflation %.2f%%, GDP growth %.2f%%", snapshot.InflationRate, snapshot.GDPGrowth)
	return snapshot, nil
}
