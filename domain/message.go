// Package domain contains core concepts of the chat system.
// This file defines every line of text the server writes to a client.
package domain

import "fmt"

const (
	PromptUsername = "Enter username: "
	PromptPassword = "Enter password: "

	ReplyAlreadyLoggedIn = "User is already logged in."
	ReplyAuthFailed      = "Authentication failed."
	ReplyWelcome         = "Welcome to the chat server!"
	ReplyUserNotFound    = "User not found."
	ReplyGroupExists     = "Group already exists."
	ReplyGroupNotFound   = "Group does not exist."
	ReplyAlreadyMember   = "You are already in this group."
	ReplyNotPartOfGroup  = "You are not part of this group."
	ReplyInvalidCommand  = "Invalid command"
)

func ServerLine(text string) string {
	return "[ Server ]: " + text
}

func DirectLine(sender, text string) string {
	return "[ " + sender + " ]: " + text
}

func GroupLine(group, text string) string {
	return "[ Group " + group + " ]: " + text
}

func JoinedAnnouncement(username string) string {
	return username + " has joined the chat."
}

func ReplyGroupCreated(group string) string {
	return fmt.Sprintf("Group %s created.", group)
}

func ReplyGroupJoined(group string) string {
	return fmt.Sprintf("You joined the group %s.", group)
}

func ReplyGroupLeft(group string) string {
	return fmt.Sprintf("You have left the group %s.", group)
}

func ReplyNotMemberOf(group string) string {
	return "You are not a member of group: " + group
}

// ReplyGroupMessageSent acknowledges a group message to its sender,
// who does not receive the message itself.
func ReplyGroupMessageSent(group string) string {
	return fmt.Sprintf("Message sent to group %s.", group)
}
