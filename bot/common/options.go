package common

import "github.com/bwmarrin/discordgo"

// Options indexes command options by name
type Options map[string]*discordgo.ApplicationCommandInteractionDataOption

// ParseOptions indexes the given options by name
func ParseOptions(options []*discordgo.ApplicationCommandInteractionDataOption) Options {
	byName := make(Options, len(options))
	for _, opt := range options {
		byName[opt.Name] = opt
	}
	return byName
}

// String returns a string option, or "" when it was not supplied
func (o Options) String(name string) string {
	if opt, ok := o[name]; ok {
		return opt.StringValue()
	}
	return ""
}

// UserID returns the id of a user option, or "" when it was not supplied
func (o Options) UserID(name string) string {
	if opt, ok := o[name]; ok {
		if id, ok := opt.Value.(string); ok {
			return id
		}
	}
	return ""
}
