package bookmarkfile

// Entry is a single bookmark in the import YAML.
//
//	- url: https://example.com
//	  name: Example site
//	  public: true
type Entry struct {
	URL    string `yaml:"url"`
	Name   string `yaml:"name"`
	Public bool   `yaml:"public"`
}

// File is the root structure of a bookmarks import file: a flat list.
type File []Entry
