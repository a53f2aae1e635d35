package site

// HomeLink is one entry of the homepage links block.
type HomeLink struct {
	Href  string
	Emoji string
	Label string
	Event string // umami event name
}

// HomeLinks returns the two columns of homepage links. The contact link
// points at the configured email address.
func HomeLinks(cfg Config) [2][]HomeLink {
	return [2][]HomeLink{
		{
			{Href: "/blog/", Emoji: "memo", Label: "My writings", Event: "home-link-blog"},
			{Href: "/", Emoji: "briefcase", Label: "My career", Event: "home-link-resume"},
		},
		{
			{Href: "/about/", Emoji: "face-with-monocle", Label: "More about me and myself", Event: "home-link-about"},
			{Href: "mailto:" + cfg.Email, Emoji: "email", Label: "Contact me", Event: "home-link-projects"},
		},
	}
}

// ShortDescription is the paragraph list shown under the greeting.
func ShortDescription() []string {
	return []string{
		"I started learning to code in 2008 when I started college.",
		"I landed my first job as a System Administrator in 2012.",
		"I have a passion for DevOps as well as Software development.",
		"I started this blog to practice my skill and share my knowledge.",
	}
}

// Bios are the lines cycled by the animated bio typer. They may contain
// inline markup and :emoji-name: shortcodes.
func Bios() []string {
	return []string{
		`I'm aliased as <b class="font-medium">Arun</b> at work.`,
		`I live in <b class="font-medium">Stuttgart, Germany</b>.`,
		`I was born in the beautiful <b class="font-medium">Lucknow</b> city.`,
		`My first programming language I learned was <b class="font-medium">C++</b>.`,
		`I love cloud engineering.`,
		`I'm focusing on learning <b class="font-medium">Cloud Architecture</b>.`,
		`I work mostly with <b class="font-medium">Python/Javascript</b> technologies.`,
		`I'm a dog-person :dog:.`,
		`I'm a sporty-guy. I love :ping-pong:, :guitar:.`,
		`I love listening :musical-keyboard: and EDM music.`,
		`I love playing video game :video-game:, PUBG is my favorite one.`,
	}
}
