package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Obiagu00/CampusConnectNG/internal/models"
	"github.com/Obiagu00/CampusConnectNG/internal/store"
)

const testReplyDelay = 20 * time.Millisecond

// setupConversationTest creates a seller with one listing and leaves a buyer
// logged in, ready to contact the seller.
func setupConversationTest(t *testing.T) (*store.Store, IUserService, IConversationService, *models.Product) {
	t.Helper()
	st := store.New()
	userSvc := NewUserService(st, NewViewService(st))
	productSvc := NewProductService(st)
	convoSvc := NewConversationService(st, testReplyDelay)
	t.Cleanup(convoSvc.Stop)
	ctx := context.Background()

	signUpTestUser(t, userSvc, "Seller Sam", "sam@unilag.edu.ng")
	product, err := productSvc.ListProduct(ctx, NewProductInput{
		Name: "Mini Fridge", Price: 45000, Category: "Appliances", Condition: models.ConditionUsed,
	})
	require.NoError(t, err)

	signUpTestUser(t, userSvc, "Buyer Bisi", "bisi@ui.edu.ng")
	return st, userSvc, convoSvc, product
}

func messageCount(t *testing.T, svc IConversationService, conversationID string) int {
	t.Helper()
	convo, err := svc.Conversation(context.Background(), conversationID)
	require.NoError(t, err)
	return len(convo.Messages)
}

func TestConversationService_ContactSeller_RequiresSession(t *testing.T) {
	st, userSvc, svc, product := setupConversationTest(t)
	ctx := context.Background()

	userSvc.Logout(ctx)
	_, err := svc.ContactSeller(ctx, product.ID)
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	assert.Empty(t, st.Conversations())
}

func TestConversationService_ContactSeller_UnknownProduct(t *testing.T) {
	_, _, svc, _ := setupConversationTest(t)

	_, err := svc.ContactSeller(context.Background(), 999999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestConversationService_ContactSeller_RejectsOwnListing(t *testing.T) {
	st, userSvc, svc, product := setupConversationTest(t)
	ctx := context.Background()

	_, err := userSvc.Login(ctx, "sam@unilag.edu.ng", "")
	require.NoError(t, err)

	_, err = svc.ContactSeller(ctx, product.ID)
	assert.ErrorIs(t, err, ErrSelfContact)
	assert.Empty(t, st.Conversations())
}

func TestConversationService_ContactSeller_Idempotent(t *testing.T) {
	_, _, svc, product := setupConversationTest(t)
	ctx := context.Background()

	first, err := svc.ContactSeller(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.Name, first.ProductName)
	assert.Equal(t, "Buyer Bisi", first.Buyer.Name)
	assert.Equal(t, "Seller Sam", first.Seller.Name)

	_, err = svc.SendMessage(ctx, first.ID, "Is this still available?")
	require.NoError(t, err)

	// Contacting again returns the same thread with its messages intact.
	again, err := svc.ContactSeller(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Len(t, again.Messages, 1)
	assert.Len(t, svc.Conversations(ctx), 1)
}

func TestConversationService_SendMessage_Validation(t *testing.T) {
	_, _, svc, product := setupConversationTest(t)
	ctx := context.Background()

	convo, err := svc.ContactSeller(ctx, product.ID)
	require.NoError(t, err)

	_, err = svc.SendMessage(ctx, convo.ID, "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.SendMessage(ctx, "1-2-3", "hello")
	assert.ErrorIs(t, err, ErrConversationNotFound)
}

func TestConversationService_BuyerMessageGetsDelayedReply(t *testing.T) {
	_, userSvc, svc, product := setupConversationTest(t)
	ctx := context.Background()

	buyer, err := userSvc.CurrentUser(ctx)
	require.NoError(t, err)
	convo, err := svc.ContactSeller(ctx, product.ID)
	require.NoError(t, err)

	msg, err := svc.SendMessage(ctx, convo.ID, "Is this still available?")
	require.NoError(t, err)
	assert.Equal(t, buyer.ID, msg.SenderID)

	// The buyer's message is visible immediately, before any reply.
	assert.Equal(t, 1, messageCount(t, svc, convo.ID))

	assert.Eventually(t, func() bool {
		return messageCount(t, svc, convo.ID) == 2
	}, time.Second, 5*time.Millisecond, "simulated seller reply never arrived")

	updated, err := svc.Conversation(ctx, convo.ID)
	require.NoError(t, err)
	reply := updated.Messages[1]
	assert.Equal(t, convo.Seller.ID, reply.SenderID)
	assert.Equal(t, SellerAutoReply, reply.Text)
	assert.GreaterOrEqual(t, reply.Timestamp, msg.Timestamp)
}

func TestConversationService_EachBuyerMessageGetsItsOwnReply(t *testing.T) {
	_, _, svc, product := setupConversationTest(t)
	ctx := context.Background()

	convo, err := svc.ContactSeller(ctx, product.ID)
	require.NoError(t, err)

	_, err = svc.SendMessage(ctx, convo.ID, "Hello?")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, convo.ID, "Still there?")
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return messageCount(t, svc, convo.ID) == 4
	}, time.Second, 5*time.Millisecond, "expected a reply per buyer message")
}

func TestConversationService_SellerMessagesDoNotTriggerReply(t *testing.T) {
	_, userSvc, svc, product := setupConversationTest(t)
	ctx := context.Background()

	convo, err := svc.ContactSeller(ctx, product.ID)
	require.NoError(t, err)

	_, err = userSvc.Login(ctx, "sam@unilag.edu.ng", "")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, convo.ID, "Yes, it's available!")
	require.NoError(t, err)

	time.Sleep(4 * testReplyDelay)
	assert.Equal(t, 1, messageCount(t, svc, convo.ID))
}

func TestConversationService_ReplyDeliveredAfterBuyerLogsOut(t *testing.T) {
	_, userSvc, svc, product := setupConversationTest(t)
	ctx := context.Background()

	convo, err := svc.ContactSeller(ctx, product.ID)
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, convo.ID, "Can you deliver to campus?")
	require.NoError(t, err)

	userSvc.Logout(ctx)

	assert.Eventually(t, func() bool {
		return messageCount(t, svc, convo.ID) == 2
	}, time.Second, 5*time.Millisecond, "reply must not depend on the session")
}

func TestConversationService_StopCancelsPendingReplies(t *testing.T) {
	_, _, svc, product := setupConversationTest(t)
	ctx := context.Background()

	convo, err := svc.ContactSeller(ctx, product.ID)
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, convo.ID, "Hello?")
	require.NoError(t, err)

	svc.Stop()

	time.Sleep(4 * testReplyDelay)
	assert.Equal(t, 1, messageCount(t, svc, convo.ID))
}

func TestConversationService_ConversationsInCreationOrder(t *testing.T) {
	st, userSvc, svc, product := setupConversationTest(t)
	productSvc := NewProductService(st)
	ctx := context.Background()

	first, err := svc.ContactSeller(ctx, product.ID)
	require.NoError(t, err)

	// A second listing by the same seller yields a distinct thread.
	_, err = userSvc.Login(ctx, "sam@unilag.edu.ng", "")
	require.NoError(t, err)
	other, err := productSvc.ListProduct(ctx, NewProductInput{
		Name: "Hotplate", Price: 8000, Category: "Appliances", Condition: models.ConditionUsed,
	})
	require.NoError(t, err)
	_, err = userSvc.Login(ctx, "bisi@ui.edu.ng", "")
	require.NoError(t, err)

	second, err := svc.ContactSeller(ctx, other.ID)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	all := svc.Conversations(ctx)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)
}
