package domain

// ItineraryDocument is the decoded engine result. Pointer fields are nil when the engine omitted them.
type ItineraryDocument struct {
	Title   *string
	Hotel   *string
	Days    []DayPlan
	Content *string // free-form text, used only when no day plans came back
	RawJSON []byte  // the decoded JSON object, for the raw fallback
}

type DayPlan struct {
	Label       *string
	Activities  []Activity
	Restaurants []string
	Flight      *string
}

type Activity struct {
	Name            *string
	Location        *string
	Description     *string
	Cuisine         *string
	SuitabilityNote *string
	Rating          *string
	Reviews         []string
}

// BlockKind identifies a rendered block.
type BlockKind string

const (
	BlockTitle BlockKind = "title"
	BlockHotel BlockKind = "hotel"
	BlockDay   BlockKind = "day"
	BlockRaw   BlockKind = "raw"
)

// Block is one display unit of a rendered itinerary.
type Block struct {
	Kind BlockKind `json:"kind"`
	Text string    `json:"text,omitempty"`
	Day  *DayBlock `json:"day,omitempty"`
}

type DayBlock struct {
	Number      int             `json:"number"`
	Header      string          `json:"header"`
	Activities  []ActivityBlock `json:"activities,omitempty"`
	Restaurants []string        `json:"restaurants,omitempty"`
	Flight      string          `json:"flight,omitempty"`
}

type ActivityBlock struct {
	Fields  []Field  `json:"fields"`
	Reviews []string `json:"reviews,omitempty"`
}

// Field is a labelled activity attribute; only present attributes become fields.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
