package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"bannerbot/internal/domain/entities"
)

type operation int

const (
	opHelp operation = iota + 1
	opStartEdit
	opCancel
	opShow
	opShowEvents
	opDeleteEvents
	opAddAdmin
	opRemoveAdmin
)

// command is what an alias resolves to. locale is the language of the
// alias, used for every reply it produces.
type command struct {
	op      operation
	section entities.Section
	locale  string
}

const (
	localeEN = "en"
	localeAR = "ar"
)

// slashAliases are recognized after a leading "/".
var slashAliases = map[string]command{
	"start": {op: opHelp, locale: localeEN},
	"help":  {op: opHelp, locale: localeEN},

	"setbanner":  {op: opStartEdit, section: entities.SectionBanner, locale: localeEN},
	"setabyss":   {op: opStartEdit, section: entities.SectionAbyss, locale: localeEN},
	"setstygian": {op: opStartEdit, section: entities.SectionStygian, locale: localeEN},
	"settheater": {op: opStartEdit, section: entities.SectionTheater, locale: localeEN},
	"setevents":  {op: opStartEdit, section: entities.SectionEvents, locale: localeEN},
	"cancel":     {op: opCancel, locale: localeEN},

	"banner":  {op: opShow, section: entities.SectionBanner, locale: localeEN},
	"abyss":   {op: opShow, section: entities.SectionAbyss, locale: localeEN},
	"stygian": {op: opShow, section: entities.SectionStygian, locale: localeEN},
	"theater": {op: opShow, section: entities.SectionTheater, locale: localeEN},
	"events":  {op: opShowEvents, locale: localeEN},

	"delevents":   {op: opDeleteEvents, locale: localeEN},
	"addadmin":    {op: opAddAdmin, locale: localeEN},
	"removeadmin": {op: opRemoveAdmin, locale: localeEN},
}

// bareAliases are the Arabic commands, recognized with or without a
// leading "/".
var bareAliases = map[string]command{
	"setbanner_ar":  {op: opStartEdit, section: entities.SectionBanner, locale: localeAR},
	"setabyss_ar":   {op: opStartEdit, section: entities.SectionAbyss, locale: localeAR},
	"setstygian_ar": {op: opStartEdit, section: entities.SectionStygian, locale: localeAR},
	"settheater_ar": {op: opStartEdit, section: entities.SectionTheater, locale: localeAR},
	"setevents_ar":  {op: opStartEdit, section: entities.SectionEvents, locale: localeAR},

	"بدء":   {op: opHelp, locale: localeAR},
	"الغاء": {op: opCancel, locale: localeAR},

	"البنر":   {op: opShow, section: entities.SectionBanner, locale: localeAR},
	"الابيس":  {op: opShow, section: entities.SectionAbyss, locale: localeAR},
	"ستيجيان": {op: opShow, section: entities.SectionStygian, locale: localeAR},
	"المسرح":  {op: opShow, section: entities.SectionTheater, locale: localeAR},
	"الاحداث": {op: opShowEvents, locale: localeAR},

	"حذف_الاحداث": {op: opDeleteEvents, locale: localeAR},
	"اضافة_مشرف":  {op: opAddAdmin, locale: localeAR},
	"ازالة_مشرف":  {op: opRemoveAdmin, locale: localeAR},
}

// parseCommand resolves the first word of text to a command and returns the
// rest of the text as its argument.
func parseCommand(text string) (command, string, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return command{}, "", false
	}
	word := fields[0]
	args := strings.Join(fields[1:], " ")

	if name, ok := strings.CutPrefix(word, "/"); ok {
		if i := strings.IndexByte(name, '@'); i > 0 {
			name = name[:i]
		}
		name = strings.ToLower(name)
		if cmd, ok := slashAliases[name]; ok {
			return cmd, args, true
		}
		word = name
	}
	if cmd, ok := bareAliases[strings.ToLower(word)]; ok {
		return cmd, args, true
	}
	return command{}, "", false
}

// applicationCommands lists the slash commands registered with Discord.
// They resolve through slashAliases by name.
func applicationCommands() []*discordgo.ApplicationCommand {
	userOption := []*discordgo.ApplicationCommandOption{{
		Type:        discordgo.ApplicationCommandOptionUser,
		Name:        "user",
		Description: "Target user",
		Required:    true,
	}}
	return []*discordgo.ApplicationCommand{
		{Name: "help", Description: "List the commands"},
		{Name: "banner", Description: "Show the current banner"},
		{Name: "abyss", Description: "Show the abyss reset"},
		{Name: "stygian", Description: "Show the stygian reset"},
		{Name: "theater", Description: "Show the theater reset"},
		{Name: "events", Description: "List current events"},
		{Name: "setbanner", Description: "Update the banner"},
		{Name: "setabyss", Description: "Update the abyss section"},
		{Name: "setstygian", Description: "Update the stygian section"},
		{Name: "settheater", Description: "Update the theater section"},
		{Name: "setevents", Description: "Add an event"},
		{Name: "cancel", Description: "Cancel the edit in progress"},
		{Name: "delevents", Description: "Delete every event"},
		{Name: "addadmin", Description: "Grant admin rights", Options: userOption},
		{Name: "removeadmin", Description: "Revoke admin rights", Options: userOption},
	}
}
