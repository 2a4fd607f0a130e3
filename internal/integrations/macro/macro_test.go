package macro

import (
	"testing"

	"github.com/sirupsen/logrus"
)

const feedXML = `<?xml version="1.0" encoding="utf-8"?>
<IndicatorFeed>
	<Indicator name="inflation_rate" value="4.1"/>
	<Indicator name="gdp_growth" value="1.8"/>
	<Indicator name="oil_prices" value="92.4"/>
	<Indicator name="mystery_metric" value="7"/>
	<Indicator name="unemployment_rate" value="not-a-number"/>
</IndicatorFeed>`

func TestParseXMLResponse(t *testing.T) {
	c := &Client{log: logrus.New()}

	snapshot, err := c.parseXMLResponse([]byte(feedXML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snapshot.InflationRate != 4.1 {
		t.Fatalf("inflation = %v, want 4.1", snapshot.InflationRate)
	}
	if snapshot.GDPGrowth != 1.8 {
		t.Fatalf("gdp growth = %v, want 1.8", snapshot.GDPGrowth)
	}
	if snapshot.OilPrices != 92.4 {
		t.Fatalf("oil prices = %v, want 92.4", snapshot.OilPrices)
	}
	// Fields missing from the feed (or unparseable) keep the defaults
	defaults := DefaultIndicators()
	if snapshot.ConsumerPriceIndex != defaults.ConsumerPriceIndex {
		t.Fatalf("cpi = %v, want default %v", snapshot.ConsumerPriceIndex, defaults.ConsumerPriceIndex)
	}
	if snapshot.UnemploymentRate != defaults.UnemploymentRate {
		t.Fatalf("unemployment = %v, want default %v", snapshot.UnemploymentRate, defaults.UnemploymentRate)
	}
	if snapshot.LastUpdated.IsZero() {
		t.Fatal("last updated is zero")
	}
}

func TestParseXMLResponseEmptyFeed(t *testing.T) {
	c := &Client{log: logrus.New()}

	if _, err := c.parseXMLResponse([]byte(`<IndicatorFeed></IndicatorFeed>`)); err == nil {
		t.Fatal("expected error for feed without indicators")
	}
	if _, err := c.parseXMLResponse([]byte(`not xml at all <<<`)); err == nil {
		t.Fatal("expected error for invalid XML")
	}
}
