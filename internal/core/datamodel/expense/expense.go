package expense

// Record is the serialized form of an expense, used both for the API payload
// and the persisted snapshot. The field layout matches what the mobile client
// has always written to device storage: Date is a calendar day
// ("2006-01-02"), CreatedAt an RFC 3339 timestamp.
type Record struct {
	ID        string  `json:"id"`
	Amount    float64 `json:"amount"`
	Category  string  `json:"category"`
	Note      string  `json:"note,omitempty"`
	Date      string  `json:"date"`
	CreatedAt string  `json:"createdAt"`
}
