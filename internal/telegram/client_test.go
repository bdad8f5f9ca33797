package telegram

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-telegram/bot"
	"github.com/leirbagxis/ChannelGate/internal/database"
	dbmodels "github.com/leirbagxis/ChannelGate/internal/database/models"
	"github.com/leirbagxis/ChannelGate/internal/database/repositories"
	"github.com/leirbagxis/ChannelGate/internal/messenger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestBot wires a bot against a stubbed API server. Responses are keyed by
// the method name at the end of the request path.
func newTestBot(t *testing.T, responses map[string]string) *bot.Bot {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		for method, body := range responses {
			if strings.HasSuffix(r.URL.Path, "/"+method) {
				fmt.Fprint(w, body)
				return
			}
		}
		fmt.Fprint(w, `{"ok":true,"result":true}`)
	}))
	t.Cleanup(srv.Close)

	b, err := bot.New("123:test", bot.WithServerURL(srv.URL), bot.WithSkipGetMe())
	require.NoError(t, err)
	return b
}

func newTestClient(t *testing.T, sessionID string, responses map[string]string) (*Client, *repositories.ChannelRepository, *repositories.MessageRepository) {
	t.Helper()
	db := database.InitTestDB()
	channels := repositories.NewChannelRepository(db)
	messages := repositories.NewMessageRepository(db)
	c := &Client{
		sessionID: sessionID,
		b:         newTestBot(t, responses),
		channels:  channels,
		messages:  messages,
	}
	return c, channels, messages
}

func TestUnsubscribeByUsernamePurgesLocalRows(t *testing.T) {
	c, channels, messages := newTestClient(t, "unsub", map[string]string{
		"getChat":   `{"ok":true,"result":{"id":-100500,"type":"channel","title":"Tech News"}}`,
		"leaveChat": `{"ok":true,"result":true}`,
	})
	ctx := context.Background()

	require.NoError(t, channels.Upsert(ctx, &dbmodels.Channel{ID: -100500, SessionID: "unsub", Title: "Tech News"}))
	require.NoError(t, messages.Save(ctx, &dbmodels.ChannelMessage{MessageID: 1, ChannelID: -100500, SessionID: "unsub", Content: "post"}))

	err := c.UnsubscribeFromChannel(ctx, "@technews", messenger.UnsubscribeOptions{DeleteLocalData: true})
	require.NoError(t, err)

	record, err := channels.GetByID(ctx, "unsub", -100500)
	require.NoError(t, err)
	assert.Nil(t, record)

	remaining, err := messages.Fetch(ctx, "unsub", -100500, 0, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestSubscribersListsOwnerAndAdmins(t *testing.T) {
	c, _, _ := newTestClient(t, "subs", map[string]string{
		"getChatAdministrators": `{"ok":true,"result":[
			{"status":"creator","user":{"id":1,"is_bot":false,"first_name":"Olga"},"is_anonymous":false},
			{"status":"administrator","user":{"id":2,"is_bot":false,"first_name":"Ana"},"is_anonymous":false,"can_be_edited":false,"can_manage_chat":true}
		]}`,
	})

	channel := c.channelHandle(-100500, "Tech News")
	subscribers, err := channel.Subscribers(context.Background(), 10)
	require.NoError(t, err)

	require.Len(t, subscribers, 2)
	assert.Equal(t, messenger.Subscriber{ID: "1", Name: "Olga", Role: "owner"}, subscribers[0])
	assert.Equal(t, messenger.Subscriber{ID: "2", Name: "Ana", Role: "admin"}, subscribers[1])
}

func TestParseChatID(t *testing.T) {
	id, err := parseChatID("-1001234567890")
	require.NoError(t, err)
	assert.Equal(t, int64(-1001234567890), id)

	id, err = parseChatID("@technews")
	require.NoError(t, err)
	assert.Equal(t, "@technews", id)

	_, err = parseChatID("123@newsletter")
	assert.Error(t, err)
}

func TestInviteUsername(t *testing.T) {
	assert.Equal(t, "@technews", inviteUsername("technews"))
	assert.Equal(t, "@technews", inviteUsername("@technews"))
	assert.Equal(t, "@technews", inviteUsername("t.me/technews"))
	assert.Equal(t, "@technews", inviteUsername("https://t.me/technews"))
}
