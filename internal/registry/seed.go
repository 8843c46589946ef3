package registry

import "github.com/xela07ax/opencode-console/internal/domain"

// seedFiles возвращает встроенный набор agent-файлов.
// В проде на этом месте будет сканирование подключенных OpenCode-репозиториев;
// пока реестр живет на фиксированных данных, по одной записи каждого типа.
func seedFiles() []*domain.AgentFile {
	return []*domain.AgentFile{
		{
			ID:          "docs-agent",
			Name:        "docs.md",
			Path:        ".opencode/agent/docs.md",
			Type:        domain.TypeAgent,
			Description: "ALWAYS use this when writing docs",
			Content: `---
description: ALWAYS use this when writing docs
---

You are an expert technical documentation writer

You are not verbose

The title of the page should be a word or a 2-3 word phrase

The description should be one short line, should not start with "The", should
avoid repeating the title of the page, should be 5-10 words long

Chunks of text should not be more than 2 sentences long

Each section is spearated by a divider of 3 dashes

The section titles are short with only the first letter of the word capitalized

The section titles are in the imperative mood

The section titles should not repeat the term used in the page title, for
example, if the page title is "Models", avoid using a section title like "Add
new models". This might be unavoidable in some cases, but try to avoid it.

Check out the /packages/web/src/content/docs/docs/index.mdx as an example.

For JS or TS code snippets remove trailing semicolons and any trailing commas
that might not be needed.

If you are making a commit prefix the commit message with ` + "`docs:`" + `

For whatever you build.`,
			Metadata: map[string]interface{}{
				"provider":    "anthropic",
				"model":       "claude-3-sonnet-20240229",
				"permissions": []string{"read", "write"},
			},
		},
		{
			ID:          "git-committer",
			Name:        "git-committer.md",
			Path:        ".opencode/agent/git-committer.md",
			Type:        domain.TypeSubagent,
			Description: "Use this agent when you are asked to commit and push code changes",
			Content: `---
description: Use this agent when you are asked to commit and push code changes to a git repository.
mode: subagent
---

You commit and push to git

Commit messages should be brief since they are used to generate release notes.

Messages should say WHY the change was made and not WHAT was changed.`,
			Metadata: map[string]interface{}{
				"provider":    "openai",
				"model":       "gpt-4",
				"permissions": []string{"git"},
			},
		},
		{
			ID:          "commit-command",
			Name:        "commit.md",
			Path:        ".opencode/command/commit.md",
			Type:        domain.TypeCommand,
			Description: "Git commit and push command",
			Content: `commit and push

make sure it includes a prefix like
docs:
tui:
core:
ci:
ignore:
wip:`,
			Metadata: map[string]interface{}{
				"provider":    "openai",
				"model":       "gpt-3.5-turbo",
				"permissions": []string{"git", "shell"},
			},
		},
	}
}
