package models

import "fmt"

// DirectMessage is a single message inside a conversation. Immutable once
// appended; ids are time-ordered so insertion order equals display order.
type DirectMessage struct {
	ID             int64  `json:"id"`
	ConversationID string `json:"conversation_id"`
	SenderID       int64  `json:"sender_id"`
	Text           string `json:"text"`
	Timestamp      int64  `json:"timestamp"` // unix milliseconds
}

// Conversation is a message thread between one buyer and one seller about one
// product. Product name and image are denormalized at contact time.
type Conversation struct {
	ID              string          `json:"id"` // composite key, see ConversationKey
	ProductID       int64           `json:"product_id"`
	ProductName     string          `json:"product_name"`
	ProductImageURL string          `json:"product_image_url"`
	Buyer           Seller          `json:"buyer"`
	Seller          Seller          `json:"seller"`
	Messages        []DirectMessage `json:"messages"`
}

// ConversationKey builds the composite key that guarantees at most one
// conversation per (buyer, seller, product) triple.
func ConversationKey(buyerID, sellerID, productID int64) string {
	return fmt.Sprintf("%d-%d-%d", buyerID, sellerID, productID)
}
