package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pevans/gdeltpull/gdelt"
)

// prompter reads interactive answers from stdin.
type prompter struct {
	r *bufio.Reader
}

func newPrompter() *prompter {
	return &prompter{r: bufio.NewReader(os.Stdin)}
}

// ask prints a question and returns the trimmed answer. A read failure
// (e.g. closed stdin) returns an empty answer, which every prompt treats as
// "use the default".
func (p *prompter) ask(question string) string {
	fmt.Println(question)
	fmt.Print("> ")
	line, _ := p.r.ReadString('\n')
	return strings.TrimSpace(line)
}

// confirm asks a yes-or-blank question.
func (p *prompter) confirm(question string) bool {
	return strings.EqualFold(p.ask(question), "yes")
}

// confirmPhrase requires the exact phrase to be typed.
func (p *prompter) confirmPhrase(question, phrase string) bool {
	return strings.EqualFold(p.ask(question), phrase)
}

// promptParams walks the user through every query parameter. Blank answers
// fall back to the defaults: all languages/countries/domains/themes, a
// start of 1 Jan 2017, and an end of fifteen minutes ago.
func (p *prompter) promptParams() *gdelt.Params {
	params := &gdelt.Params{}

	answer := p.ask("Please enter keywords/phrases, separated by commas.")
	for _, k := range strings.Split(answer, ",") {
		if k = strings.TrimSpace(k); k != "" {
			params.Keywords = append(params.Keywords, k)
		}
	}

	if len(params.Keywords) > 1 {
		params.KeywordFormat = strings.ToUpper(p.ask(
			`You entered multiple keywords/phrases. Which format would you like to use: "AND" or "OR".`))
	}

	params.Language = p.ask("Please enter a language or leave blank to include all languages.")
	params.Country = p.ask("Please enter a country or leave blank to include all countries.")
	params.Domain = p.ask("Please enter a domain name to search for or leave blank to include all domain names.")
	params.Theme = strings.ToUpper(p.ask(
		"Please enter a theme from http://data.gdeltproject.org/api/v2/guides/LOOKUP-GKGTHEMES.TXT or leave blank to include all themes."))
	params.Custom = p.ask(
		`Please enter custom query parameters, e.g. 'near20:"dog cat" repeat3:"cow"' (or leave blank to skip).`)

	params.Start = gdelt.NormalizeTimestamp(p.ask(
		"Please enter a start date in YYYYMMDDHHMMSS (you may use -, /, ., or : to format), or leave blank to search from 1 Jan 2017."))
	if params.Start == "" {
		params.Start = "20170101000000"
	}

	params.End = gdelt.NormalizeTimestamp(p.ask(
		"Please enter an end date in YYYYMMDDHHMMSS (you may use -, /, ., or : to format), or leave blank to search until the present."))
	if params.End == "" {
		// The API lags slightly behind real time.
		params.End = gdelt.FormatTimestamp(time.Now().Add(-15 * time.Minute))
	}

	params.Translation = p.ask(
		"Please enter a language code to translate titles to, or leave blank to keep titles in their original language(s).")

	return params
}
