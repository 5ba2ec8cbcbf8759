package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"trip_surprise/internal/domain"
)

const (
	// PlaceholderTitle replaces a missing trip title.
	PlaceholderTitle = "Your Surprise Trip"
	// HotelNotAvailable is the engine's way of saying there is no hotel.
	HotelNotAvailable = "N/A"
)

// activity field labels, in display order
const (
	LabelActivity    = "Activity"
	LabelLocation    = "Location"
	LabelDescription = "Description"
	LabelCuisine     = "Cuisine"
	LabelSuitable    = "Why it's suitable"
	LabelRating      = "Rating"
)

// Render walks the document and produces display blocks: title, optional hotel, then either one block per day
// or a single raw block when there are no days.
func Render(doc *domain.ItineraryDocument) []domain.Block {
	if doc == nil {
		return nil
	}
	title := strings.TrimSpace(deref(doc.Title))
	if title == "" {
		title = PlaceholderTitle
	}
	blocks := []domain.Block{{Kind: domain.BlockTitle, Text: title}}

	if hotel := strings.TrimSpace(deref(doc.Hotel)); hotel != "" && !hotelUnavailable(hotel) {
		blocks = append(blocks, domain.Block{Kind: domain.BlockHotel, Text: hotel})
	}

	if len(doc.Days) == 0 {
		return append(blocks, domain.Block{Kind: domain.BlockRaw, Text: rawContent(doc)})
	}

	for i, d := range doc.Days {
		blocks = append(blocks, domain.Block{Kind: domain.BlockDay, Day: renderDay(i+1, d)})
	}
	return blocks
}

func hotelUnavailable(h string) bool {
	return strings.EqualFold(h, HotelNotAvailable) || strings.EqualFold(h, "not available")
}

// rawContent prefers the document's content field, then its JSON.
func rawContent(doc *domain.ItineraryDocument) string {
	if c := strings.TrimSpace(deref(doc.Content)); c != "" {
		return c
	}
	if len(doc.RawJSON) == 0 {
		return ""
	}
	var out bytes.Buffer
	if err := json.Indent(&out, doc.RawJSON, "", "  "); err != nil {
		return string(doc.RawJSON)
	}
	return out.String()
}

func renderDay(n int, d domain.DayPlan) *domain.DayBlock {
	header := strings.TrimSpace(deref(d.Label))
	if header == "" {
		header = fmt.Sprintf("Day %d", n)
	}
	day := &domain.DayBlock{
		Number:      n,
		Header:      header,
		Restaurants: lo.Compact(d.Restaurants),
		Flight:      strings.TrimSpace(deref(d.Flight)),
	}
	for _, a := range d.Activities {
		day.Activities = append(day.Activities, renderActivity(a))
	}
	return day
}

func renderActivity(a domain.Activity) domain.ActivityBlock {
	pairs := []struct {
		label string
		value *string
	}{
		{LabelActivity, a.Name},
		{LabelLocation, a.Location},
		{LabelDescription, a.Description},
		{LabelCuisine, a.Cuisine},
		{LabelSuitable, a.SuitabilityNote},
		{LabelRating, a.Rating},
	}
	out := domain.ActivityBlock{Fields: []domain.Field{}, Reviews: lo.Compact(a.Reviews)}
	for _, p := range pairs {
		if v := strings.TrimSpace(deref(p.value)); v != "" {
			out.Fields = append(out.Fields, domain.Field{Label: p.label, Value: v})
		}
	}
	return out
}

var fieldIcons = map[string]string{
	LabelActivity:    "🎉",
	LabelLocation:    "📍",
	LabelDescription: "📝",
	LabelCuisine:     "🍽️",
	LabelSuitable:    "🤩",
	LabelRating:      "⭐",
}

// RenderMarkdown lays the blocks out as Markdown.
func RenderMarkdown(blocks []domain.Block) string {
	var b strings.Builder
	for _, bl := range blocks {
		switch bl.Kind {
		case domain.BlockTitle:
			fmt.Fprintf(&b, "### ✈️ %s\n\n", bl.Text)
		case domain.BlockHotel:
			fmt.Fprintf(&b, "🏨 **Hotel:** %s\n\n", bl.Text)
		case domain.BlockRaw:
			b.WriteString("---\n\n### 📋 Trip Details\n\n")
			b.WriteString(bl.Text)
			b.WriteString("\n")
		case domain.BlockDay:
			writeDay(&b, bl.Day)
		}
	}
	return b.String()
}

func writeDay(b *strings.Builder, d *domain.DayBlock) {
	if d == nil {
		return
	}
	b.WriteString("---\n\n")
	if d.Header == fmt.Sprintf("Day %d", d.Number) {
		fmt.Fprintf(b, "#### 📅 %s\n\n", d.Header)
	} else {
		fmt.Fprintf(b, "#### 📅 Day %d: %s\n\n", d.Number, d.Header)
	}
	for _, a := range d.Activities {
		for i, f := range a.Fields {
			if i == 0 && f.Label == LabelActivity {
				fmt.Fprintf(b, "%s **%s:** %s\n", fieldIcons[f.Label], f.Label, f.Value)
				continue
			}
			fmt.Fprintf(b, "- %s **%s:** %s\n", fieldIcons[f.Label], f.Label, f.Value)
		}
		if len(a.Reviews) > 0 {
			b.WriteString("- 💬 **Reviews:**\n")
			for _, r := range a.Reviews {
				fmt.Fprintf(b, "    - %s\n", r)
			}
		}
		b.WriteString("\n")
	}
	if len(d.Restaurants) > 0 {
		b.WriteString("🍴 **Restaurants:**\n")
		for _, r := range d.Restaurants {
			fmt.Fprintf(b, "- %s\n", r)
		}
		b.WriteString("\n")
	}
	if d.Flight != "" {
		fmt.Fprintf(b, "🛫 **Flight:** %s\n\n", d.Flight)
	}
}
