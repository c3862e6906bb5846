package service

import (
	"context"

	"warbler/internal/models"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn              func(context.Context, uint) (*models.User, error)
	getByUsernameFn        func(context.Context, string) (*models.User, error)
	getByEmailFn           func(context.Context, string) (*models.User, error)
	getByUsernameOrEmailFn func(context.Context, string) (*models.User, error)
	createFn               func(context.Context, *models.User) error
	updateFn               func(context.Context, *models.User) error
	deleteFn               func(context.Context, uint) error
	listFn                 func(context.Context, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsernameOrEmail(ctx context.Context, identity string) (*models.User, error) {
	return s.getByUsernameOrEmailFn(ctx, identity)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:              func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByUsernameFn:        func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByEmailFn:           func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameOrEmailFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:               func(_ context.Context, _ *models.User) error { return nil },
		updateFn:               func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:               func(_ context.Context, _ uint) error { return nil },
		listFn:                 func(_ context.Context, _, _ int) ([]models.User, error) { return nil, nil },
	}
}

// socialRepoStub is a stub for repository.SocialRepository.
type socialRepoStub struct {
	createFollowFn    func(context.Context, *models.Follower) error
	deleteFollowFn    func(context.Context, uint, uint) error
	listFollowersFn   func(context.Context, uint) ([]models.User, error)
	listFollowingFn   func(context.Context, uint) ([]models.User, error)
	isFollowingFn     func(context.Context, uint, uint) (bool, error)
	createBlockFn     func(context.Context, *models.Block) error
	deleteBlockFn     func(context.Context, uint, uint) error
	isBlockedEitherFn func(context.Context, uint, uint) (bool, error)
}

func (s *socialRepoStub) CreateFollow(ctx context.Context, f *models.Follower) error {
	return s.createFollowFn(ctx, f)
}
func (s *socialRepoStub) DeleteFollow(ctx context.Context, followerID, followingID uint) error {
	return s.deleteFollowFn(ctx, followerID, followingID)
}
func (s *socialRepoStub) ListFollowers(ctx context.Context, userID uint) ([]models.User, error) {
	return s.listFollowersFn(ctx, userID)
}
func (s *socialRepoStub) ListFollowing(ctx context.Context, userID uint) ([]models.User, error) {
	return s.listFollowingFn(ctx, userID)
}
func (s *socialRepoStub) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	return s.isFollowingFn(ctx, followerID, followingID)
}
func (s *socialRepoStub) CreateBlock(ctx context.Context, b *models.Block) error {
	return s.createBlockFn(ctx, b)
}
func (s *socialRepoStub) DeleteBlock(ctx context.Context, blockerID, blockedID uint) error {
	return s.deleteBlockFn(ctx, blockerID, blockedID)
}
func (s *socialRepoStub) IsBlockedEither(ctx context.Context, userID1, userID2 uint) (bool, error) {
	return s.isBlockedEitherFn(ctx, userID1, userID2)
}

func noopSocialRepo() *socialRepoStub {
	return &socialRepoStub{
		createFollowFn:    func(_ context.Context, _ *models.Follower) error { return nil },
		deleteFollowFn:    func(_ context.Context, _, _ uint) error { return nil },
		listFollowersFn:   func(_ context.Context, _ uint) ([]models.User, error) { return nil, nil },
		listFollowingFn:   func(_ context.Context, _ uint) ([]models.User, error) { return nil, nil },
		isFollowingFn:     func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		createBlockFn:     func(_ context.Context, _ *models.Block) error { return nil },
		deleteBlockFn:     func(_ context.Context, _, _ uint) error { return nil },
		isBlockedEitherFn: func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
	}
}

// tweetRepoStub is a stub for repository.TweetRepository.
type tweetRepoStub struct {
	createFn       func(context.Context, *models.Tweet) error
	getByIDFn      func(context.Context, uint, uint) (*models.Tweet, error)
	listByUserFn   func(context.Context, uint, int, int, uint) ([]*models.Tweet, error)
	listHomeFeedFn func(context.Context, uint, int, int) ([]*models.Tweet, error)
	deleteFn       func(context.Context, uint) error
}

func (s *tweetRepoStub) Create(ctx context.Context, tweet *models.Tweet) error {
	return s.createFn(ctx, tweet)
}
func (s *tweetRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Tweet, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *tweetRepoStub) ListByUser(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Tweet, error) {
	return s.listByUserFn(ctx, userID, limit, offset, currentUserID)
}
func (s *tweetRepoStub) ListHomeFeed(ctx context.Context, userID uint, limit, offset int) ([]*models.Tweet, error) {
	return s.listHomeFeedFn(ctx, userID, limit, offset)
}
func (s *tweetRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopTweetRepo() *tweetRepoStub {
	return &tweetRepoStub{
		createFn: func(_ context.Context, _ *models.Tweet) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Tweet, error) {
			return &models.Tweet{ID: id}, nil
		},
		listByUserFn:   func(_ context.Context, _ uint, _, _ int, _ uint) ([]*models.Tweet, error) { return nil, nil },
		listHomeFeedFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Tweet, error) { return nil, nil },
		deleteFn:       func(_ context.Context, _ uint) error { return nil },
	}
}

// groupRepoStub is a stub for repository.GroupRepository.
type groupRepoStub struct {
	createFn         func(context.Context, *models.Group, uint) error
	getByIDFn        func(context.Context, uint) (*models.Group, error)
	addMemberFn      func(context.Context, *models.GroupMember) error
	removeMemberFn   func(context.Context, uint, uint) error
	isMemberFn       func(context.Context, uint, uint) (bool, error)
	listMembersFn    func(context.Context, uint) ([]models.User, error)
	listUserGroupsFn func(context.Context, uint) ([]models.Group, error)
}

func (s *groupRepoStub) Create(ctx context.Context, g *models.Group, creatorID uint) error {
	return s.createFn(ctx, g, creatorID)
}
func (s *groupRepoStub) GetByID(ctx context.Context, id uint) (*models.Group, error) {
	return s.getByIDFn(ctx, id)
}
func (s *groupRepoStub) AddMember(ctx context.Context, m *models.GroupMember) error {
	return s.addMemberFn(ctx, m)
}
func (s *groupRepoStub) RemoveMember(ctx context.Context, groupID, userID uint) error {
	return s.removeMemberFn(ctx, groupID, userID)
}
func (s *groupRepoStub) IsMember(ctx context.Context, groupID, userID uint) (bool, error) {
	return s.isMemberFn(ctx, groupID, userID)
}
func (s *groupRepoStub) ListMembers(ctx context.Context, groupID uint) ([]models.User, error) {
	return s.listMembersFn(ctx, groupID)
}
func (s *groupRepoStub) ListUserGroups(ctx context.Context, userID uint) ([]models.Group, error) {
	return s.listUserGroupsFn(ctx, userID)
}

func noopGroupRepo() *groupRepoStub {
	return &groupRepoStub{
		createFn:         func(_ context.Context, _ *models.Group, _ uint) error { return nil },
		getByIDFn:        func(_ context.Context, id uint) (*models.Group, error) { return &models.Group{ID: id}, nil },
		addMemberFn:      func(_ context.Context, _ *models.GroupMember) error { return nil },
		removeMemberFn:   func(_ context.Context, _, _ uint) error { return nil },
		isMemberFn:       func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		listMembersFn:    func(_ context.Context, _ uint) ([]models.User, error) { return nil, nil },
		listUserGroupsFn: func(_ context.Context, _ uint) ([]models.Group, error) { return nil, nil },
	}
}

// messageRepoStub is a stub for repository.MessageRepository.
type messageRepoStub struct {
	createFn          func(context.Context, *models.Message) error
	getByIDFn         func(context.Context, uint) (*models.Message, error)
	listDirectFn      func(context.Context, uint, uint, uint, int, int) ([]models.Message, error)
	listGroupFn       func(context.Context, uint, uint, int, int) ([]models.Message, error)
	upsertReactionFn  func(context.Context, *models.Reaction) error
	deleteReactionFn  func(context.Context, uint, uint) error
	markReadFn        func(context.Context, uint, uint) error
	unreadCountFn     func(context.Context, uint) (int64, error)
	createTombstoneFn func(context.Context, uint, uint) error
}

func (s *messageRepoStub) Create(ctx context.Context, msg *models.Message) error {
	return s.createFn(ctx, msg)
}
func (s *messageRepoStub) GetByID(ctx context.Context, id uint) (*models.Message, error) {
	return s.getByIDFn(ctx, id)
}
func (s *messageRepoStub) ListDirect(ctx context.Context, userID1, userID2, viewerID uint, limit, offset int) ([]models.Message, error) {
	return s.listDirectFn(ctx, userID1, userID2, viewerID, limit, offset)
}
func (s *messageRepoStub) ListGroup(ctx context.Context, groupID, viewerID uint, limit, offset int) ([]models.Message, error) {
	return s.listGroupFn(ctx, groupID, viewerID, limit, offset)
}
func (s *messageRepoStub) UpsertReaction(ctx context.Context, r *models.Reaction) error {
	return s.upsertReactionFn(ctx, r)
}
func (s *messageRepoStub) DeleteReaction(ctx context.Context, messageID, userID uint) error {
	return s.deleteReactionFn(ctx, messageID, userID)
}
func (s *messageRepoStub) MarkRead(ctx context.Context, messageID, userID uint) error {
	return s.markReadFn(ctx, messageID, userID)
}
func (s *messageRepoStub) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.unreadCountFn(ctx, userID)
}
func (s *messageRepoStub) CreateTombstone(ctx context.Context, messageID, userID uint) error {
	return s.createTombstoneFn(ctx, messageID, userID)
}

func noopMessageRepo() *messageRepoStub {
	return &messageRepoStub{
		createFn:  func(_ context.Context, _ *models.Message) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Message, error) { return &models.Message{ID: id}, nil },
		listDirectFn: func(_ context.Context, _, _, _ uint, _, _ int) ([]models.Message, error) {
			return nil, nil
		},
		listGroupFn:       func(_ context.Context, _, _ uint, _, _ int) ([]models.Message, error) { return nil, nil },
		upsertReactionFn:  func(_ context.Context, _ *models.Reaction) error { return nil },
		deleteReactionFn:  func(_ context.Context, _, _ uint) error { return nil },
		markReadFn:        func(_ context.Context, _, _ uint) error { return nil },
		unreadCountFn:     func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		createTombstoneFn: func(_ context.Context, _, _ uint) error { return nil },
	}
}

// engagementRepoStub is a stub for repository.EngagementRepository.
type engagementRepoStub struct {
	createLikeFn    func(context.Context, *models.Like) error
	deleteLikeFn    func(context.Context, uint, uint) error
	createRetweetFn func(context.Context, *models.Retweet) error
	deleteRetweetFn func(context.Context, uint, uint) error
	createReplyFn   func(context.Context, *models.Reply) error
	listRepliesFn   func(context.Context, uint, int, int) ([]models.Reply, error)
	recordViewFn    func(context.Context, *models.View) error
}

func (s *engagementRepoStub) CreateLike(ctx context.Context, l *models.Like) error {
	return s.createLikeFn(ctx, l)
}
func (s *engagementRepoStub) DeleteLike(ctx context.Context, userID, tweetID uint) error {
	return s.deleteLikeFn(ctx, userID, tweetID)
}
func (s *engagementRepoStub) CreateRetweet(ctx context.Context, r *models.Retweet) error {
	return s.createRetweetFn(ctx, r)
}
func (s *engagementRepoStub) DeleteRetweet(ctx context.Context, userID, tweetID uint) error {
	return s.deleteRetweetFn(ctx, userID, tweetID)
}
func (s *engagementRepoStub) CreateReply(ctx context.Context, r *models.Reply) error {
	return s.createReplyFn(ctx, r)
}
func (s *engagementRepoStub) ListReplies(ctx context.Context, tweetID uint, limit, offset int) ([]models.Reply, error) {
	return s.listRepliesFn(ctx, tweetID, limit, offset)
}
func (s *engagementRepoStub) RecordView(ctx context.Context, v *models.View) error {
	return s.recordViewFn(ctx, v)
}

func noopEngagementRepo() *engagementRepoStub {
	return &engagementRepoStub{
		createLikeFn:    func(_ context.Context, _ *models.Like) error { return nil },
		deleteLikeFn:    func(_ context.Context, _, _ uint) error { return nil },
		createRetweetFn: func(_ context.Context, _ *models.Retweet) error { return nil },
		deleteRetweetFn: func(_ context.Context, _, _ uint) error { return nil },
		createReplyFn:   func(_ context.Context, _ *models.Reply) error { return nil },
		listRepliesFn:   func(_ context.Context, _ uint, _, _ int) ([]models.Reply, error) { return nil, nil },
		recordViewFn:    func(_ context.Context, _ *models.View) error { return nil },
	}
}

// recordedEvent is one captured realtime publish.
type recordedEvent struct {
	eventType string
	payload   any
}

// notifierRecorder records realtime publishes for assertions.
type notifierRecorder struct {
	userEvents  map[uint][]recordedEvent
	groupEvents map[uint][]recordedEvent
}

func newNotifierRecorder() *notifierRecorder {
	return &notifierRecorder{
		userEvents:  make(map[uint][]recordedEvent),
		groupEvents: make(map[uint][]recordedEvent),
	}
}

func (n *notifierRecorder) PublishToUser(_ context.Context, userID uint, eventType string, payload any) {
	n.userEvents[userID] = append(n.userEvents[userID], recordedEvent{eventType, payload})
}

func (n *notifierRecorder) PublishToGroup(_ context.Context, groupID uint, eventType string, payload any) {
	n.groupEvents[groupID] = append(n.groupEvents[groupID], recordedEvent{eventType, payload})
}
