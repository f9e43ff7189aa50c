package charset

// Built-in supplementary characters per UI language. Order is the order in
// which glyphs appear in the per-language tables.
var languages = map[string]string{
	"cs": "áčďéěíňóřšťúůýžÁČĎÉĚÍŇÓŘŠŤÚŮÝŽ",
	"de": "äöüßÄÖÜ",
	"es": "áéíñóúü¡¿ÁÉÍÑÓÚÜ",
	"fr": "àâæçéèêëîïôœùûüÿÀÂÆÇÉÈÊËÎÏÔŒÙÛÜŸ",
	"it": "àèéìòùÀÈÉÌÒÙ",
	"pt": "ãáâàçéêíõóôúÃÁÂÀÇÉÊÍÕÓÔÚ",
	"tr": "çğıöşüÇĞİÖŞÜ",
}
