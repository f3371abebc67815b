package appstore

import "encoding/json"

// The customer reviews feed wraps every scalar in a {"label": ...} object
// and serves single-element collections as bare objects instead of arrays.

type feedResponse struct {
	Feed feedBody `json:"feed"`
}

type feedBody struct {
	Title *labelValue `json:"title"`
	Entry entryList   `json:"entry"`
	Link  linkList    `json:"link"`
}

type labelValue struct {
	Label string `json:"label"`
}

type feedEntry struct {
	ID        labelValue  `json:"id"`
	Author    entryAuthor `json:"author"`
	Rating    labelValue  `json:"im:rating"`
	Version   labelValue  `json:"im:version"`
	Title     labelValue  `json:"title"`
	Content   labelValue  `json:"content"`
	Updated   labelValue  `json:"updated"`
	VoteSum   labelValue  `json:"im:voteSum"`
	VoteCount labelValue  `json:"im:voteCount"`
}

type entryAuthor struct {
	Name labelValue `json:"name"`
}

type feedLink struct {
	Attributes linkAttributes `json:"attributes"`
}

type linkAttributes struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

// entryList accepts both a JSON array and a single bare object.
type entryList []feedEntry

func (e *entryList) UnmarshalJSON(data []byte) error {
	var many []feedEntry
	if err := json.Unmarshal(data, &many); err == nil {
		*e = many
		return nil
	}

	var one feedEntry
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*e = entryList{one}
	return nil
}

type linkList []feedLink

func (l *linkList) UnmarshalJSON(data []byte) error {
	var many []feedLink
	if err := json.Unmarshal(data, &many); err == nil {
		*l = many
		return nil
	}

	var one feedLink
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*l = linkList{one}
	return nil
}
