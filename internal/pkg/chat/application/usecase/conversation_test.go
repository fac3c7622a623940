package usecase_test

import (
	"context"
	"errors"
	"testing"

	chat "parley/internal/pkg/chat/application/domain"
	"parley/internal/pkg/chat/application/usecase"
)

func TestCreateConversationRejectsEmptyTitle(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser("alice", "Alice", "alice@example.com")
	uc := usecase.NewCreateConversationUseCase(repo)

	for _, title := range []string{"", "   "} {
		_, err := uc.Execute(context.Background(), usecase.CreateConversationInput{OwnerID: "alice", Title: title})
		if !errors.Is(err, chat.ErrInvalidInput) {
			t.Fatalf("title %q: expected ErrInvalidInput, got %v", title, err)
		}
	}
}

func TestCreateConversationAddsCreatorOnce(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser("alice", "Alice", "alice@example.com")
	uc := usecase.NewCreateConversationUseCase(repo)

	conv, err := uc.Execute(context.Background(), usecase.CreateConversationInput{OwnerID: "alice", Title: "Team"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conv.Title != "Team" || conv.OwnerID != "alice" {
		t.Fatalf("unexpected conversation: %+v", conv)
	}

	count := 0
	for _, m := range conv.Members {
		if m.UserID == "alice" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("creator should appear exactly once in member list, got %d", count)
	}
}

func TestListConversationsOrdersByActivity(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	repo.addUser("alice", "Alice", "alice@example.com")

	create := usecase.NewCreateConversationUseCase(repo)
	first, _ := create.Execute(ctx, usecase.CreateConversationInput{OwnerID: "alice", Title: "First"})
	second, _ := create.Execute(ctx, usecase.CreateConversationInput{OwnerID: "alice", Title: "Second"})

	// Posting into the first room bumps it back to the top.
	post := usecase.NewPostMessageUseCase(repo, nil)
	if _, err := post.Execute(ctx, usecase.PostMessageInput{
		SenderID: "alice", ConversationID: first.ID, Role: chat.RoleUser, Content: "hi",
	}); err != nil {
		t.Fatalf("post: %v", err)
	}

	list := usecase.NewListConversationsUseCase(repo)
	convs, err := list.Execute(ctx, usecase.ListConversationsInput{UserID: "alice"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(convs) != 2 {
		t.Fatalf("expected 2 conversations, got %d", len(convs))
	}
	if convs[0].ID != first.ID || convs[1].ID != second.ID {
		t.Fatalf("expected most recently active first, got %s then %s", convs[0].Title, convs[1].Title)
	}
	if convs[0].MessageCount != 1 {
		t.Fatalf("expected message count 1, got %d", convs[0].MessageCount)
	}
}

func TestAddMemberSecondCallFails(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	repo.addUser("alice", "Alice", "alice@example.com")
	repo.addUser("bob", "Bob", "bob@example.com")

	conv, _ := usecase.NewCreateConversationUseCase(repo).
		Execute(ctx, usecase.CreateConversationInput{OwnerID: "alice", Title: "Team"})

	add := usecase.NewAddMemberUseCase(repo)
	in := usecase.AddMemberInput{ActingUserID: "alice", ConversationID: conv.ID, TargetUserID: "bob"}

	member, err := add.Execute(ctx, in)
	if err != nil {
		t.Fatalf("first invite: %v", err)
	}
	if member.User == nil || member.User.Name != "Bob" {
		t.Fatalf("membership should carry the target profile, got %+v", member.User)
	}

	if _, err := add.Execute(ctx, in); !errors.Is(err, chat.ErrAlreadyMember) {
		t.Fatalf("second invite: expected ErrAlreadyMember, got %v", err)
	}

	members, _ := repo.ListMembers(ctx, conv.ID)
	if len(members) != 2 {
		t.Fatalf("membership count changed by failed invite: %d", len(members))
	}
}

func TestAddMemberByNonMemberFails(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	repo.addUser("alice", "Alice", "alice@example.com")
	repo.addUser("bob", "Bob", "bob@example.com")
	repo.addUser("carol", "Carol", "carol@example.com")

	conv, _ := usecase.NewCreateConversationUseCase(repo).
		Execute(ctx, usecase.CreateConversationInput{OwnerID: "alice", Title: "Team"})

	add := usecase.NewAddMemberUseCase(repo)

	// Outsider inviting a valid target.
	if _, err := add.Execute(ctx, usecase.AddMemberInput{
		ActingUserID: "bob", ConversationID: conv.ID, TargetUserID: "carol",
	}); !errors.Is(err, chat.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for non-member caller, got %v", err)
	}

	// Same outcome for a missing conversation: existence is not leaked.
	if _, err := add.Execute(ctx, usecase.AddMemberInput{
		ActingUserID: "bob", ConversationID: "conv-missing", TargetUserID: "carol",
	}); !errors.Is(err, chat.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing conversation, got %v", err)
	}
}

func TestListMembersRequiresMembership(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	repo.addUser("alice", "Alice", "alice@example.com")
	repo.addUser("bob", "Bob", "bob@example.com")

	conv, _ := usecase.NewCreateConversationUseCase(repo).
		Execute(ctx, usecase.CreateConversationInput{OwnerID: "alice", Title: "Team"})

	list := usecase.NewListMembersUseCase(repo)

	if _, err := list.Execute(ctx, usecase.ListMembersInput{ActingUserID: "bob", ConversationID: conv.ID}); !errors.Is(err, chat.ErrNotMember) {
		t.Fatalf("expected ErrNotMember, got %v", err)
	}

	members, err := list.Execute(ctx, usecase.ListMembersInput{ActingUserID: "alice", ConversationID: conv.ID})
	if err != nil {
		t.Fatalf("member should be allowed: %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(members))
	}
}

func TestSearchUsersValidatesAndExcludesSelf(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	repo.addUser("alice", "Alice", "alice@example.com")
	repo.addUser("bob", "Bob", "bob@example.com")
	repo.addUser("bobby", "Bobby", "bobby@example.com")

	search := usecase.NewSearchUsersUseCase(repo)

	if _, err := search.Execute(ctx, usecase.SearchUsersInput{ActingUserID: "alice", Query: "b"}); !errors.Is(err, chat.ErrInvalidInput) {
		t.Fatalf("short query: expected ErrInvalidInput, got %v", err)
	}

	users, err := search.Execute(ctx, usecase.SearchUsersInput{ActingUserID: "bob", Query: "bo"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	for _, u := range users {
		if u.ID == "bob" {
			t.Fatal("search must exclude the acting user")
		}
	}
	if len(users) != 1 || users[0].ID != "bobby" {
		t.Fatalf("unexpected results: %+v", users)
	}
}
