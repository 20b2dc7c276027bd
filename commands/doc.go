// Package commands defines the "!f" chat command grammar and decodes parsed
// messages into typed commands.
//
//	!f talk join
//	!f talk leave
//	!f talk skip [all]
//	!f talk voice list
//	!f talk voice set <voice>
//	!f talk map list
//	!f talk map add <from> <to>
//	!f talk map remove <id>
//	!f poll open <title> <option>...
//	!f poll repeat
//	!f help [talk|poll]
//
// A message whose first word is not "!f" is not a command: [Parse] reports
// false and the caller treats the message as ordinary chat. Missing
// arguments are not parse errors either; [Usage] turns them into messages
// for the user.
package commands
