package registry

import "issuecomb/app/issue"

var defaultPools = []Pool{
	{Value: "all", Label: "All Projects"},
	{Value: "ml-ai", Label: "ML / AI"},
	{Value: "web-dev", Label: "Web Development"},
	{Value: "creative", Label: "Creative Tools"},
	{Value: "media", Label: "Media / Video"},
	{Value: "systems", Label: "Systems / Kernel"},
}

var defaultProjects = []ProjectConfig{
	{
		Slug:            "pytorch",
		Name:            "PyTorch",
		Platform:        issue.PlatformGitHub,
		APIBase:         "https://api.github.com",
		ProjectID:       "pytorch/pytorch",
		BeginnerLabels:  []string{"good first issue", "bootcamp"},
		ContributingURL: "https://github.com/pytorch/pytorch/blob/main/CONTRIBUTING.md",
		Pools:           []string{"ml-ai", "all"},
	},
	{
		Slug:            "react",
		Name:            "React",
		Platform:        issue.PlatformGitHub,
		APIBase:         "https://api.github.com",
		ProjectID:       "facebook/react",
		BeginnerLabels:  []string{"good first issue", "Difficulty: starter"},
		ContributingURL: "https://reactjs.org/docs/how-to-contribute.html",
		Pools:           []string{"web-dev", "all"},
	},
	{
		Slug:            "nodejs",
		Name:            "Node.js",
		Platform:        issue.PlatformGitHub,
		APIBase:         "https://api.github.com",
		ProjectID:       "nodejs/node",
		BeginnerLabels:  []string{"good first issue"},
		ContributingURL: "https://github.com/nodejs/node/blob/main/CONTRIBUTING.md",
		Pools:           []string{"web-dev", "all"},
	},
	{
		Slug:            "huggingface-transformers",
		Name:            "Hugging Face Transformers",
		Platform:        issue.PlatformGitHub,
		APIBase:         "https://api.github.com",
		ProjectID:       "huggingface/transformers",
		BeginnerLabels:  []string{"Good First Issue", "Good Second Issue"},
		ContributingURL: "https://github.com/huggingface/transformers/blob/main/CONTRIBUTING.md",
		Pools:           []string{"ml-ai", "all"},
	},
	{
		Slug:            "openlibrary",
		Name:            "Internet Archive Open Library",
		Platform:        issue.PlatformGitHub,
		APIBase:         "https://api.github.com",
		ProjectID:       "internetarchive/openlibrary",
		BeginnerLabels:  []string{"Good First Issue", "Hacktoberfest"},
		ContributingURL: "https://github.com/internetarchive/openlibrary/blob/master/CONTRIBUTING.md",
		Pools:           []string{"web-dev", "all"},
	},
	{
		Slug:            "tensorflow",
		Name:            "TensorFlow",
		Platform:        issue.PlatformGitHub,
		APIBase:         "https://api.github.com",
		ProjectID:       "tensorflow/tensorflow",
		BeginnerLabels:  []string{"good first issue", "stat:contribution welcome"},
		ContributingURL: "https://github.com/tensorflow/tensorflow/blob/master/CONTRIBUTING.md",
		Pools:           []string{"ml-ai", "all"},
	},
	{
		Slug:            "langchain",
		Name:            "LangChain",
		Platform:        issue.PlatformGitHub,
		APIBase:         "https://api.github.com",
		ProjectID:       "langchain-ai/langchain",
		BeginnerLabels:  []string{"good first issue", "help wanted"},
		ContributingURL: "https://python.langchain.com/docs/contributing/",
		Pools:           []string{"ml-ai", "all"},
	},
	{
		Slug:            "langchainjs",
		Name:            "LangChain.js",
		Platform:        issue.PlatformGitHub,
		APIBase:         "https://api.github.com",
		ProjectID:       "langchain-ai/langchainjs",
		BeginnerLabels:  []string{"good first issue", "help wanted"},
		ContributingURL: "https://github.com/langchain-ai/langchainjs/blob/main/CONTRIBUTING.md",
		Pools:           []string{"ml-ai", "all"},
	},
	{
		Slug:            "langgraphjs",
		Name:            "LangGraph.js",
		Platform:        issue.PlatformGitHub,
		APIBase:         "https://api.github.com",
		ProjectID:       "langchain-ai/langgraphjs",
		BeginnerLabels:  []string{"good first issue", "help wanted"},
		ContributingURL: "https://github.com/langchain-ai/langgraphjs/blob/main/CONTRIBUTING.md",
		Pools:           []string{"ml-ai", "all"},
	},
	{
		Slug:            "mastra",
		Name:            "Mastra AI",
		Platform:        issue.PlatformGitHub,
		APIBase:         "https://api.github.com",
		ProjectID:       "mastra-ai/mastra",
		BeginnerLabels:  []string{"good first issue", "help wanted"},
		ContributingURL: "https://github.com/mastra-ai/mastra/blob/main/CONTRIBUTING.md",
		Pools:           []string{"ml-ai", "all"},
	},
	{
		Slug:            "onnxruntime",
		Name:            "ONNX Runtime",
		Platform:        issue.PlatformGitHub,
		APIBase:         "https://api.github.com",
		ProjectID:       "microsoft/onnxruntime",
		BeginnerLabels:  []string{"contributions welcome"},
		ContributingURL: "https://github.com/microsoft/onnxruntime/blob/main/CONTRIBUTING.md",
		Pools:           []string{"ml-ai", "all"},
	},
	{
		Slug:            "deepspeed",
		Name:            "DeepSpeed",
		Platform:        issue.PlatformGitHub,
		APIBase:         "https://api.github.com",
		ProjectID:       "deepspeedai/DeepSpeed",
		BeginnerLabels:  []string{"good first issue", "help wanted"},
		ContributingURL: "https://github.com/deepspeedai/DeepSpeed/blob/master/CONTRIBUTING.md",
		Pools:           []string{"ml-ai", "all"},
	},
	{
		Slug:            "dapr",
		Name:            "Dapr",
		Platform:        issue.PlatformGitHub,
		APIBase:         "https://api.github.com",
		ProjectID:       "dapr/dapr",
		BeginnerLabels:  []string{"good first issue", "help wanted"},
		ContributingURL: "https://docs.dapr.io/contributing/",
		Pools:           []string{"web-dev", "all"},
	},
	{
		Slug:            "vscode",
		Name:            "Visual Studio Code",
		Platform:        issue.PlatformGitHub,
		APIBase:         "https://api.github.com",
		ProjectID:       "microsoft/vscode",
		BeginnerLabels:  []string{"good first issue", "help wanted"},
		ContributingURL: "https://github.com/microsoft/vscode/wiki/How-to-Contribute",
		Pools:           []string{"web-dev", "all"},
	},
	{
		Slug:            "playwright",
		Name:            "Playwright",
		Platform:        issue.PlatformGitHub,
		APIBase:         "https://api.github.com",
		ProjectID:       "microsoft/playwright",
		BeginnerLabels:  []string{"open-to-a-pull-request"},
		ContributingURL: "https://github.com/microsoft/playwright/blob/main/CONTRIBUTING.md",
		Pools:           []string{"web-dev", "all"},
	},
	{
		Slug:            "vlc",
		Name:            "VLC Media Player",
		Platform:        issue.PlatformGitLab,
		APIBase:         "https://code.videolan.org/api/v4",
		ProjectID:       "videolan/vlc",
		BeginnerLabels:  []string{"Difficulty::easy"},
		ContributingURL: "https://wiki.videolan.org/Contribute/",
		Pools:           []string{"media", "all"},
	},
	{
		Slug:            "blender",
		Name:            "Blender",
		Platform:        issue.PlatformGitea,
		APIBase:         "https://projects.blender.org/api/v1",
		ProjectID:       "blender/blender",
		BeginnerLabels:  []string{"Good First Issue"},
		ContributingURL: "https://developer.blender.org/docs/handbook/contributing/",
		Pools:           []string{"creative", "all"},
	},
	{
		Slug:            "mediawiki",
		Name:            "MediaWiki",
		Platform:        issue.PlatformPhabricator,
		APIBase:         "https://phabricator.wikimedia.org/api",
		ProjectID:       "PHID-PROJ-onnxucoedheq3jevknyr",
		BeginnerLabels:  []string{"good first task"},
		ContributingURL: "https://www.mediawiki.org/wiki/How_to_contribute",
		Pools:           []string{"web-dev", "all"},
	},
	{
		Slug:            "linux-kernel",
		Name:            "Linux Kernel",
		Platform:        issue.PlatformBugzilla,
		APIBase:         "https://bugzilla.kernel.org/rest",
		ProjectID:       "kernel",
		BeginnerLabels:  []string{"trivial"},
		ContributingURL: "https://docs.kernel.org/process/submitting-patches.html",
		Pools:           []string{"systems", "all"},
	},
	{
		Slug:            "ffmpeg",
		Name:            "FFmpeg",
		Platform:        issue.PlatformTrac,
		APIBase:         "https://trac.ffmpeg.org/query",
		ProjectID:       "ffmpeg",
		BeginnerLabels:  []string{"easy"},
		ContributingURL: "https://ffmpeg.org/developer.html",
		Pools:           []string{"media", "all"},
	},
}
