package repository

import (
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/util"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedConversation(t *testing.T, repo ConversationRepo, uid1, uid2 uint64) *model.Conversation {
	t.Helper()
	conv := &model.Conversation{
		Type:    model.ConversationTypeDirect,
		PeerKey: util.PeerKey(uid1, uid2),
	}
	members := []*model.ConversationMember{
		{UserID: uid1},
		{UserID: uid2},
	}
	require.NoError(t, repo.CreateConversation(context.Background(), conv, members))
	return conv
}

func TestConversationCreateAndLookup(t *testing.T) {
	db := newTestDB(t)
	repo := NewConversationRepo(db)
	ctx := context.Background()

	conv := seedConversation(t, repo, 2, 1)

	got, err := repo.GetConversationByPeerKey(ctx, "1_2")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, conv.ID, got.ID)

	ok, err := repo.IsMember(ctx, conv.ID, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.IsMember(ctx, conv.ID, 3)
	require.NoError(t, err)
	assert.False(t, ok)

	miss, err := repo.GetConversationByPeerKey(ctx, "8_9")
	require.NoError(t, err)
	assert.Nil(t, miss)
}

func TestIncrMaxSeqMonotonic(t *testing.T) {
	db := newTestDB(t)
	repo := NewConversationRepo(db)
	ctx := context.Background()

	conv := seedConversation(t, repo, 1, 2)

	seq1, err := repo.IncrMaxSeq(ctx, conv.ID, "第一条", 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, seq1)

	seq2, err := repo.IncrMaxSeq(ctx, conv.ID, "第二条", 2)
	require.NoError(t, err)
	assert.EqualValues(t, 2, seq2)

	got, err := repo.GetConversation(ctx, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, "第二条", got.LastMsgContent)
	assert.EqualValues(t, 2, got.LastSenderID)
}

func TestUnreadCounting(t *testing.T) {
	db := newTestDB(t)
	repo := NewConversationRepo(db)
	ctx := context.Background()

	conv := seedConversation(t, repo, 1, 2)

	for i := 0; i < 3; i++ {
		_, err := repo.IncrMaxSeq(ctx, conv.ID, "msg", 1)
		require.NoError(t, err)
	}

	total, err := repo.GetTotalUnreadCount(ctx, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	require.NoError(t, repo.UpdateReadSeq(ctx, conv.ID, 2, 2))

	total, err = repo.GetTotalUnreadCount(ctx, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	list, err := repo.GetUserConversationMemList(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.EqualValues(t, 1, list[0].UnreadCount)
	assert.Equal(t, "msg", list[0].Conversation.LastMsgContent)

	// 全局未读数跨会话求和
	conv2 := seedConversation(t, repo, 2, 3)
	_, err = repo.IncrMaxSeq(ctx, conv2.ID, "hi", 3)
	require.NoError(t, err)
	_, err = repo.IncrMaxSeq(ctx, conv2.ID, "hi", 3)
	require.NoError(t, err)

	total, err = repo.GetTotalUnreadCount(ctx, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
}
