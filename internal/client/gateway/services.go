// Copyright (c) 2026 StudyMate. All rights reserved.

package gateway

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/studymate/api/internal/users/auth"
	"github.com/studymate/api/pkg/pagination"
)

// # Profile

// Profile returns the caller's own profile.
func (client *Client) Profile(context context.Context) (*auth.PublicUser, error) {
	var payload auth.PublicUser
	if err := client.get(context, "/users/profile", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// ProfileUpdate carries the optional profile mutations; nil fields are
// omitted from the request body entirely.
type ProfileUpdate struct {
	Name          *string   `json:"name,omitempty"`
	AvatarID      *string   `json:"avatarId,omitempty"`
	Domains       *[]string `json:"domains,omitempty"`
	LearningStyle *string   `json:"learningStyle,omitempty"`
	StudyTime     *string   `json:"studyTime,omitempty"`
	TeamPref      *string   `json:"teamPref,omitempty"`
}

// UpdateProfile applies a partial update to the caller's profile.
func (client *Client) UpdateProfile(context context.Context, update ProfileUpdate) (*auth.PublicUser, error) {
	var payload auth.PublicUser
	if err := client.put(context, "/users/profile", update, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// UserByID returns any user's public profile.
func (client *Client) UserByID(context context.Context, id string) (*auth.PublicUser, error) {
	var payload auth.PublicUser
	if err := client.get(context, "/users/"+url.PathEscape(id), nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// UserPage is one page of directory search results.
type UserPage struct {
	Data []auth.PublicUser `json:"data"`
	Meta pagination.Meta   `json:"meta"`
}

/*
SearchUsers runs a member directory search.

Parameters:
  - query: Search term matched against names and usernames
  - domains: Optional topic filter; empty means no filtering
  - params: Page selection
*/
func (client *Client) SearchUsers(context context.Context, query string, domains []string, params pagination.Params) (*UserPage, error) {
	values := url.Values{}
	values.Set("q", query)
	if len(domains) > 0 {
		values.Set("domains", strings.Join(domains, ","))
	}
	if params.Page > 0 {
		values.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		values.Set("limit", strconv.Itoa(params.Limit))
	}

	var page UserPage
	if err := client.get(context, "/users/search", values, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// # Posts
//
// Post, group and message payloads belong to their own services, so they
// come back as raw JSON rather than typed structs.

// CreatePost publishes a new post.
func (client *Client) CreatePost(context context.Context, post any) (json.RawMessage, error) {
	var payload json.RawMessage
	if err := client.post(context, "/posts", post, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// LikePost toggles the caller's like on a post.
func (client *Client) LikePost(context context.Context, postID string) (json.RawMessage, error) {
	var payload json.RawMessage
	if err := client.put(context, "/posts/"+url.PathEscape(postID)+"/like", struct{}{}, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// MyPosts returns the caller's own posts.
func (client *Client) MyPosts(context context.Context) (json.RawMessage, error) {
	var payload json.RawMessage
	if err := client.get(context, "/posts/myposts", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// UpdatePost edits one of the caller's posts.
func (client *Client) UpdatePost(context context.Context, postID string, post any) (json.RawMessage, error) {
	var payload json.RawMessage
	if err := client.put(context, "/posts/"+url.PathEscape(postID), post, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// DeletePost removes one of the caller's posts.
func (client *Client) DeletePost(context context.Context, postID string) (json.RawMessage, error) {
	var payload json.RawMessage
	if err := client.del(context, "/posts/"+url.PathEscape(postID), &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// PostsByUser returns another user's posts.
func (client *Client) PostsByUser(context context.Context, userID string) (json.RawMessage, error) {
	var payload json.RawMessage
	if err := client.get(context, "/posts/user/"+url.PathEscape(userID), nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// # Groups

// Groups lists all study groups.
func (client *Client) Groups(context context.Context) (json.RawMessage, error) {
	var payload json.RawMessage
	if err := client.get(context, "/groups", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// MyGroups lists the groups the caller belongs to.
func (client *Client) MyGroups(context context.Context) (json.RawMessage, error) {
	var payload json.RawMessage
	if err := client.get(context, "/groups/my-groups", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// JoinGroup adds the caller to a group.
func (client *Client) JoinGroup(context context.Context, groupID string) (json.RawMessage, error) {
	var payload json.RawMessage
	if err := client.post(context, "/groups/"+url.PathEscape(groupID)+"/join", struct{}{}, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// LeaveGroup removes the caller from a group.
func (client *Client) LeaveGroup(context context.Context, groupID string) (json.RawMessage, error) {
	var payload json.RawMessage
	if err := client.del(context, "/groups/"+url.PathEscape(groupID)+"/leave", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// GroupMembers lists a group's members.
func (client *Client) GroupMembers(context context.Context, groupID string) (json.RawMessage, error) {
	var payload json.RawMessage
	if err := client.get(context, "/groups/"+url.PathEscape(groupID)+"/members", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// # Messages

// DirectMessages returns the message history of a direct-message room.
func (client *Client) DirectMessages(context context.Context, roomID string) (json.RawMessage, error) {
	var payload json.RawMessage
	if err := client.get(context, "/messages/dm/"+url.PathEscape(roomID), nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// GroupMessages returns the message history of a group chat.
func (client *Client) GroupMessages(context context.Context, groupID string) (json.RawMessage, error) {
	var payload json.RawMessage
	if err := client.get(context, "/messages/group/"+url.PathEscape(groupID), nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// MyChats lists the caller's active conversations.
func (client *Client) MyChats(context context.Context) (json.RawMessage, error) {
	var payload json.RawMessage
	if err := client.get(context, "/messages/my-chats", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// # Recommendations

// FindPartners asks the matching service for partner recommendations.
func (client *Client) FindPartners(context context.Context, filters url.Values) (json.RawMessage, error) {
	var payload json.RawMessage
	if err := client.get(context, "/v1/partners/find-partner", filters, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// RecommendedPosts asks the matching service for post recommendations.
func (client *Client) RecommendedPosts(context context.Context, filters url.Values) (json.RawMessage, error) {
	var payload json.RawMessage
	if err := client.get(context, "/v1/posts/recommend-posts", filters, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}
