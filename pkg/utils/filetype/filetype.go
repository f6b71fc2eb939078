// Package filetype maps file names to coarse categories by extension.
package filetype

import "strings"

// Category is a coarse file type
type Category string

const (
	Video        Category = "video"
	Audio        Category = "audio"
	Image        Category = "image"
	PDF          Category = "pdf"
	Document     Category = "document"
	Spreadsheet  Category = "spreadsheet"
	Presentation Category = "presentation"
	Archive      Category = "archive"
	Subtitle     Category = "subtitle"
	Code         Category = "code"
	Other        Category = "other"
)

// DefaultIcon is the icon of files that fall into Other
const DefaultIcon = "insert_drive_file"

type entry struct {
	category   Category
	icon       string
	extensions []string
}

// table is scanned in order; the first set containing the extension wins.
var table = []entry{
	{Video, "videocam", []string{"mp4", "mkv", "avi", "mov", "wmv", "flv", "webm"}},
	{Audio, "music_note", []string{"mp3", "wav", "ogg", "flac", "aac", "m4a"}},
	{Image, "image", []string{"jpg", "jpeg", "png", "gif", "bmp", "svg", "webp"}},
	{PDF, "picture_as_pdf", []string{"pdf"}},
	{Document, "description", []string{"doc", "docx"}},
	{Spreadsheet, "table_chart", []string{"xls", "xlsx", "csv"}},
	{Presentation, "slideshow", []string{"ppt", "pptx"}},
	{Archive, "folder_zip", []string{"zip", "rar", "7z", "tar", "gz"}},
	{Subtitle, "subtitles", []string{"srt", "sub", "sbv", "vtt"}},
	{Code, "code", []string{"html", "css", "js", "ts", "jsx", "tsx", "php", "py", "java", "c", "cpp", "cs"}},
}

// Extension returns the lower-cased text after the last '.', or "" if filename has none
func Extension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(filename[idx+1:])
}

func lookup(filename string) *entry {
	ext := Extension(filename)
	if ext == "" {
		return nil
	}
	for i := range table {
		for _, e := range table[i].extensions {
			if e == ext {
				return &table[i]
			}
		}
	}
	return nil
}

// Classify returns the category of filename. It never fails; unknown
// extensions map to Other.
func Classify(filename string) Category {
	if e := lookup(filename); e != nil {
		return e.category
	}
	return Other
}

// Icon returns the Material icon name used by the web frontend for filename
func Icon(filename string) string {
	if e := lookup(filename); e != nil {
		return e.icon
	}
	return DefaultIcon
}
