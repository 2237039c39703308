package shell

import (
	"fmt"
	"strings"

	"github.com/desertthunder/abook/internal/models"
	"github.com/desertthunder/abook/internal/shared"
)

type handler func(args []string) (string, error)

type command struct {
	name  string
	usage string
	run   handler
	exit  bool
}

func (s *Shell) register() {
	s.commands = make(map[string]*command)
	s.names = nil

	for _, cmd := range []*command{
		{name: "hello", usage: "hello", run: s.hello},
		{name: "help", usage: "help", run: s.help},
		{name: "add", usage: "add <name> <phone> [birthday]", run: s.add},
		{name: "change", usage: "change <name> <old phone> <new phone>", run: s.change},
		{name: "phone", usage: "phone <name>", run: s.phone},
		{name: "delete", usage: "delete <name> [phone]", run: s.remove},
		{name: "show all", usage: "show all", run: s.showAll},
		{name: "search", usage: "search <text>", run: s.search},
		{name: "birthday", usage: "birthday <name> [date]", run: s.birthday},
		{name: "exit", usage: "exit | close | good bye", exit: true},
	} {
		s.commands[cmd.name] = cmd
		s.names = append(s.names, cmd.name)
	}

	exit := s.commands["exit"]
	s.commands["close"] = exit
	s.commands["good bye"] = exit
}

func missing(usage string) error {
	return fmt.Errorf("%w, usage: %s", shared.ErrMissingArgument, usage)
}

func (s *Shell) record(name string) (*models.Record, error) {
	record, ok := s.book.Find(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrNotFound, name)
	}
	return record, nil
}

func (s *Shell) hello([]string) (string, error) {
	return "How can I help you?", nil
}

func (s *Shell) help([]string) (string, error) {
	var sb strings.Builder
	sb.WriteString("Commands:")
	for _, name := range s.names {
		sb.WriteString("\n  ")
		sb.WriteString(s.commands[name].usage)
	}
	return sb.String(), nil
}

func (s *Shell) add(args []string) (string, error) {
	if len(args) < 2 {
		return "", missing(s.commands["add"].usage)
	}
	name, number := args[0], args[1]
	birthday := strings.Join(args[2:], " ")

	record, ok := s.book.Find(name)
	if !ok {
		record, err := models.NewRecord(name, birthday)
		if err != nil {
			return "", err
		}
		if err := record.AddPhone(number); err != nil {
			return "", err
		}
		s.book.AddRecord(record)
		return fmt.Sprintf("Contact %s %s is added", name, number), nil
	}

	if _, dup := record.FindPhone(number); dup {
		return "", fmt.Errorf("%w: %s has %s", shared.ErrDuplicatePhone, name, number)
	}
	if _, err := models.NewPhone(number); err != nil {
		return "", err
	}
	if birthday != "" {
		if err := record.SetBirthday(birthday); err != nil {
			return "", err
		}
	}
	if err := record.AddPhone(number); err != nil {
		return "", err
	}
	return fmt.Sprintf("Phone %s added to %s", number, name), nil
}

func (s *Shell) change(args []string) (string, error) {
	if len(args) < 3 {
		return "", missing(s.commands["change"].usage)
	}
	name, old, replacement := args[0], args[1], args[2]

	record, err := s.record(name)
	if err != nil {
		return "", err
	}
	if err := record.EditPhone(old, replacement); err != nil {
		return "", err
	}
	return fmt.Sprintf("Contact %s phone number %s is changed to %s", name, old, replacement), nil
}

func (s *Shell) phone(args []string) (string, error) {
	if len(args) < 1 {
		return "", missing(s.commands["phone"].usage)
	}

	record, err := s.record(args[0])
	if err != nil {
		return "", err
	}

	phones := record.Phones()
	if len(phones) == 0 {
		return fmt.Sprintf("Contact %s has no phone numbers", args[0]), nil
	}

	numbers := make([]string, len(phones))
	for i, p := range phones {
		numbers[i] = p.String()
	}
	return fmt.Sprintf("Contact %s has phone numbers: %s", args[0], strings.Join(numbers, "; ")), nil
}

func (s *Shell) remove(args []string) (string, error) {
	if len(args) < 1 {
		return "", missing(s.commands["delete"].usage)
	}
	name := args[0]

	record, err := s.record(name)
	if err != nil {
		return "", err
	}

	if len(args) == 1 {
		s.book.Delete(name)
		return fmt.Sprintf("Contact %s is deleted", name), nil
	}

	number := args[1]
	if _, ok := record.FindPhone(number); !ok {
		return "", fmt.Errorf("%w: %s", shared.ErrPhoneNotFound, number)
	}
	if len(record.Phones()) == 1 {
		return "", fmt.Errorf("%w of %s, delete the contact instead", shared.ErrLastPhone, name)
	}
	record.RemovePhone(number)
	return fmt.Sprintf("Phone %s removed from %s", number, name), nil
}

func (s *Shell) showAll([]string) (string, error) {
	if s.book.Len() == 0 {
		return "No contacts found.", nil
	}
	return render(s.book)
}

func (s *Shell) search(args []string) (string, error) {
	if len(args) < 1 {
		return "", missing(s.commands["search"].usage)
	}
	text := strings.Join(args, " ")

	results := s.book.SearchRecords(text)
	if results.Len() == 0 {
		return "No matches for " + text, nil
	}
	return render(results)
}

func (s *Shell) birthday(args []string) (string, error) {
	if len(args) < 1 {
		return "", missing(s.commands["birthday"].usage)
	}
	name := args[0]

	record, err := s.record(name)
	if err != nil {
		return "", err
	}
	if len(args) > 1 {
		if err := record.SetBirthday(strings.Join(args[1:], " ")); err != nil {
			return "", err
		}
	}

	days, err := record.DaysToBirthday(s.clock.Now())
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d days until %s's birthday", days, name), nil
}

func render(book *models.AddressBook) (string, error) {
	var sb strings.Builder
	if err := book.PrintBook(&sb); err != nil {
		return "", err
	}
	return strings.TrimSuffix(sb.String(), "\n"), nil
}
